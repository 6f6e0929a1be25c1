// Command tifftools reads, edits, and rewrites TIFF and BigTIFF files
// without ever touching pixel data: dump prints the tag tree, split and
// concat reshape the top-level IFD list, and set edits individual tags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tifftools-go/tifftools/tiff"
	"github.com/tifftools-go/tifftools/tiffops"
	"github.com/tifftools-go/tifftools/tifftype"
)

const (
	exitOK     = 0
	exitUser   = 1
	exitIO     = 2
	exitFormat = 3
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tifftools: ")
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUser)
	}
	var err error
	switch os.Args[1] {
	case "dump":
		err = runDump(os.Args[2:])
	case "split":
		err = runSplit(os.Args[2:])
	case "concat", "merge":
		err = runConcat(os.Args[2:])
	case "set":
		err = runSet(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		log.Printf("unknown command %q", os.Args[1])
		usage()
		os.Exit(exitUser)
	}
	if err != nil {
		log.Println(err)
		os.Exit(exitCode(err))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [options]

Commands:
  dump   [--max N] [--json|--yaml] source...
  split  [--subifds] [--overwrite] source [prefix]
  concat [--overwrite] source... output        (alias: merge)
  set    [--overwrite] source [output]
         (--set TAG[:DATATYPE][,IFD] VALUE | --unset TAG[,IFD] |
          --setfrom TAG[,IFD] PATH)...
`, os.Args[0])
}

// exitCode maps an error to the documented exit codes: 1 for user errors,
// 2 for I/O failures, 3 for malformed or over-capacity TIFF data.
// Anything unrecognized (os.PathError and friends) counts as I/O.
func exitCode(err error) int {
	var userErr *tiff.UserError
	var formatErr *tiff.FormatError
	var bigErr *tiff.BigTiffRequiredError
	var dtErr *tifftype.UnknownDatatypeError
	switch {
	case errors.As(err, &userErr):
		return exitUser
	case errors.As(err, &formatErr), errors.As(err, &bigErr), errors.As(err, &dtErr):
		return exitFormat
	default:
		return exitIO
	}
}

func runDump(args []string) error {
	fl := flag.NewFlagSet("dump", flag.ExitOnError)
	max := fl.Int("max", 20, "maximum values to print per tag, 0 for no limit")
	jsonOut := fl.Bool("json", false, "emit JSON instead of text")
	yamlOut := fl.Bool("yaml", false, "emit YAML instead of text")
	fl.Parse(args)
	if fl.NArg() < 1 {
		return &tiff.UserError{Message: "dump needs at least one source file"}
	}
	opts := tiffops.DumpOptions{Max: *max}
	switch {
	case *jsonOut && *yamlOut:
		return &tiff.UserError{Message: "--json and --yaml are mutually exclusive"}
	case *jsonOut:
		opts.Format = tiffops.DumpJSON
	case *yamlOut:
		opts.Format = tiffops.DumpYAML
	}
	return tiffops.Dump(os.Stdout, fl.Args(), opts)
}

func runSplit(args []string) error {
	fl := flag.NewFlagSet("split", flag.ExitOnError)
	subifds := fl.Bool("subifds", false, "write each SubIFD to its own file")
	overwrite := fl.Bool("overwrite", false, "allow replacing existing files")
	fl.BoolVar(overwrite, "y", *overwrite, "shorthand for --overwrite")
	ifdsFirst := fl.Bool("ifdsfirst", false, "place all IFDs before image data")
	dedup := fl.Bool("dedup", false, "skip rewriting identical image data regions")
	fl.Parse(args)
	if fl.NArg() < 1 || fl.NArg() > 2 {
		return &tiff.UserError{Message: "split needs a source file and an optional prefix"}
	}
	prefix := ""
	if fl.NArg() == 2 {
		prefix = fl.Arg(1)
	}
	paths, err := tiffops.Split(fl.Arg(0), prefix, tiffops.SplitOptions{
		SubIFDs:   *subifds,
		Overwrite: *overwrite,
		Writer:    tiff.Options{IFDsFirst: *ifdsFirst, Dedup: *dedup},
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func runConcat(args []string) error {
	fl := flag.NewFlagSet("concat", flag.ExitOnError)
	overwrite := fl.Bool("overwrite", false, "allow replacing the output file")
	fl.BoolVar(overwrite, "y", *overwrite, "shorthand for --overwrite")
	ifdsFirst := fl.Bool("ifdsfirst", false, "place all IFDs before image data")
	dedup := fl.Bool("dedup", false, "skip rewriting identical image data regions")
	fl.Parse(args)
	if fl.NArg() < 2 {
		return &tiff.UserError{Message: "concat needs at least one source and an output"}
	}
	sources := fl.Args()[:fl.NArg()-1]
	output := fl.Arg(fl.NArg() - 1)
	return tiffops.Concat(sources, output, tiffops.ConcatOptions{
		Overwrite: *overwrite,
		Writer:    tiff.Options{IFDsFirst: *ifdsFirst, Dedup: *dedup},
	})
}

// runSet parses its arguments by hand: --set and --setfrom each consume
// two operands, which the flag package cannot express.
func runSet(args []string) error {
	var (
		overwrite   bool
		ifdsFirst   bool
		dedup       bool
		setlist     []tiffops.SetDirective
		unsetlist   []string
		setfromlist []tiffops.SetFromDirective
		positional  []string
	)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--overwrite", "-y":
			overwrite = true
		case "--ifdsfirst":
			ifdsFirst = true
		case "--dedup":
			dedup = true
		case "--set":
			if i+2 >= len(args) {
				return &tiff.UserError{Message: "--set needs a tag and a value"}
			}
			setlist = append(setlist, tiffops.SetDirective{Spec: args[i+1], Value: args[i+2]})
			i += 2
		case "--unset":
			if i+1 >= len(args) {
				return &tiff.UserError{Message: "--unset needs a tag"}
			}
			unsetlist = append(unsetlist, args[i+1])
			i++
		case "--setfrom":
			if i+2 >= len(args) {
				return &tiff.UserError{Message: "--setfrom needs a tag and a file"}
			}
			setfromlist = append(setfromlist, tiffops.SetFromDirective{Spec: args[i+1], Path: args[i+2]})
			i += 2
		default:
			if len(args[i]) > 1 && args[i][0] == '-' {
				return &tiff.UserError{Message: "unknown option " + args[i]}
			}
			positional = append(positional, args[i])
		}
	}
	if len(positional) < 1 || len(positional) > 2 {
		return &tiff.UserError{Message: "set needs a source file and an optional output"}
	}
	output := ""
	if len(positional) == 2 {
		output = positional[1]
	}
	return tiffops.Set(positional[0], output, setlist, unsetlist, setfromlist, tiffops.SetOptions{
		Overwrite: overwrite,
		Writer:    tiff.Options{IFDsFirst: ifdsFirst, Dedup: dedup},
	})
}
