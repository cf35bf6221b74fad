package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vsariola/pogen/docgen"
	"github.com/vsariola/pogen/po"
	"github.com/vsariola/pogen/version"
)

func main() {
	formatFlag := flag.String("f", "text", "Output format: text, markdown or html.")
	libFlag := flag.String("l", "", "Only document this library: generator, rhythm, texture, clone or filter.")
	tmplDir := flag.String("t", "", "Use the templates in this directory instead of the standard templates.")
	outPath := flag.String("o", "", "Write to this file instead of standard output.")
	list := flag.Bool("list", false, "Only list the names and acronyms.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	format, err := docgen.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var libs []po.Library
	if *libFlag != "" {
		lib, err := po.ParseLibrary(*libFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		libs = append(libs, lib)
	}
	var gen *docgen.Generator
	if *tmplDir != "" {
		gen, err = docgen.NewFromTemplates(*tmplDir)
	} else {
		gen, err = docgen.New()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating documentation generator: %v\n", err)
		os.Exit(1)
	}
	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create file %v: %v\n", *outPath, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if *list {
		for _, s := range gen.NewReference(libs...).Sections {
			fmt.Fprintf(out, "%v\n", s.Title)
			for _, e := range s.Entries {
				fmt.Fprintf(out, "  %-6v %v\n", e.Acronym, e.Name)
			}
		}
		return
	}
	if flag.NArg() == 0 {
		if err := gen.Reference(out, format, libs...); err != nil {
			fmt.Fprintf(os.Stderr, "could not write the reference: %v\n", err)
			os.Exit(1)
		}
		return
	}
	retval := 0
	for _, name := range flag.Args() {
		info, ok := po.Lookup(name, libs...)
		if !ok {
			searched := libs
			if len(searched) == 0 {
				searched = []po.Library{po.GeneratorLib, po.RhythmLib, po.TextureLib, po.CloneLib, po.FilterLib}
			}
			fmt.Fprintf(os.Stderr, "%v\n", &po.NoSuchParameterError{Name: name, Libraries: searched})
			retval = 1
			continue
		}
		if err := gen.Entry(out, format, info); err != nil {
			fmt.Fprintf(os.Stderr, "could not document %v: %v\n", name, err)
			retval = 1
		}
	}
	if retval != 0 {
		os.Exit(retval)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "pogen reference. Documents the named parameter objects, or all of them.\nUsage: %s [flags] [name ...]\n", os.Args[0])
	flag.PrintDefaults()
}
