package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/automata"
	"github.com/vsariola/pogen/version"
)

func main() {
	rule := flag.Float64("rule", 110, "Rule of the automaton.")
	mutation := flag.Float64("m", 0, "Probability of a cell mutating at each generation.")
	seed := flag.Uint64("seed", 0, "Seed of the random source used by mutations and random init.")
	width := flag.Int("w", 0, "Number of cells shown per line; 0 means the terminal width, or all cells if not writing to a terminal.")
	extract := flag.String("e", "", "Print the values read with this table extraction string, such as sr or flatColumn, instead of drawing.")
	norm := flag.Bool("norm", false, "Normalize the extracted values between 0 and 1.")
	info := flag.Bool("i", false, "Print the canonical specification and rule before the generations.")
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
	spec := strings.Join(flag.Args(), "")
	a, err := automata.New(spec, *rule, *mutation, pogen.NewSource(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create the automaton: %v\n", err)
		os.Exit(1)
	}
	a.Gen(a.Spec().Generations()-1, *rule, *mutation)
	if *info {
		fmt.Printf("%v rule %v\n", a.Spec(), a.Rule())
	}
	if *extract != "" {
		f, err := automata.ParseTableFormat(pogen.NewString(*extract))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, row := range a.Extract(f, *norm) {
			strs := make([]string, len(row))
			for i, v := range row {
				strs[i] = pogen.FormatNumber(v)
			}
			fmt.Println(strings.Join(strs, " "))
		}
		return
	}
	cols := *width
	if cols <= 0 {
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil {
				cols = w
			}
		}
	}
	for i, row := range a.History() {
		if i < a.Spec().S {
			continue
		}
		fmt.Println(crop(a.FormatRow(row), cols))
	}
}

// crop keeps the center cols characters of a line.
func crop(line string, cols int) string {
	if cols <= 0 || len(line) <= cols {
		return line
	}
	start := (len(line) - cols) / 2
	return line[start : start+cols]
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "pogen cellular automaton viewer. Draws the generations of an automaton specification such as f{s}k{2}r{1}x{81}y{40}.\nUsage: %s [flags] [spec]\n", os.Args[0])
	flag.PrintDefaults()
}
