package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vsariola/pogen/config"
	"github.com/vsariola/pogen/po"
	"github.com/vsariola/pogen/presets"
	"github.com/vsariola/pogen/store"
	"github.com/vsariola/pogen/version"
)

func main() {
	cfg := config.Load()
	dbPath := flag.String("db", "", "Database file; defaults to the database of the user config.")
	debug := flag.Bool("d", false, "Log database operations.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if cfg.YmlError != nil {
		fmt.Fprintf(os.Stderr, "could not read the user config, using defaults: %v\n", cfg.YmlError)
	}
	path := *dbPath
	if path == "" {
		var err error
		if path, err = cfg.DatabasePath(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := os.MkdirAll(dirOf(path), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "could not create directory for %v: %v\n", path, err)
			os.Exit(1)
		}
	}
	s, err := store.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	s.Debug = *debug
	err = run(s, cfg.Factory(), flag.Arg(0), flag.Args()[1:])
	s.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(s *store.Store, f *po.Factory, cmd string, args []string) error {
	need := func(n int, usage string) error {
		if len(args) < n {
			return fmt.Errorf("usage: %v %v", cmd, usage)
		}
		return nil
	}
	switch cmd {
	case "add":
		if err := need(3, "library name spec [doc]"); err != nil {
			return err
		}
		lib, err := po.ParseLibrary(args[0])
		if err != nil {
			return err
		}
		doc := strings.Join(args[3:], " ")
		e, err := s.Add(f, lib, args[1], args[2], doc)
		if err != nil {
			return fmt.Errorf("could not add %v: %v", args[1], err)
		}
		fmt.Printf("%v %v: %v\n", e.ID, e.Name, e.Spec)
	case "import":
		if err := need(1, "preset [name]"); err != nil {
			return err
		}
		p, ok := presets.Load().Find(args[0])
		if !ok {
			return fmt.Errorf("no preset named %v", args[0])
		}
		name := strings.ReplaceAll(p.Name, " ", "_")
		if len(args) > 1 {
			name = args[1]
		}
		e, err := s.Add(f, p.Library, name, p.Spec, p.Doc)
		if err != nil {
			return fmt.Errorf("could not import %v: %v", p.Name, err)
		}
		fmt.Printf("%v %v: %v\n", e.ID, e.Name, e.Spec)
	case "list", "ls":
		libs := []po.Library{po.GeneratorLib, po.RhythmLib, po.TextureLib, po.CloneLib, po.FilterLib}
		if len(args) > 0 {
			lib, err := po.ParseLibrary(args[0])
			if err != nil {
				return err
			}
			libs = []po.Library{lib}
		}
		for _, lib := range libs {
			entries, err := s.List(lib)
			if err != nil {
				return fmt.Errorf("could not list %v: %v", lib, err)
			}
			for _, e := range entries {
				fmt.Printf("%-10v %-20v %v\n", lib, e.Name, e.Spec)
			}
		}
	case "show":
		if err := need(2, "library name"); err != nil {
			return err
		}
		e, err := get(s, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("name:     %v\nid:       %v\nlibrary:  %v\nspec:     %v\n", e.Name, e.ID, e.Library, e.Spec)
		if e.Doc != "" {
			fmt.Printf("doc:      %v\n", e.Doc)
		}
		fmt.Printf("created:  %v\nmodified: %v\n", e.Created.Local().Format("2006-01-02 15:04:05"), e.Modified.Local().Format("2006-01-02 15:04:05"))
		p, err := e.New(f)
		if err != nil {
			return fmt.Errorf("stored specification no longer creates: %v", err)
		}
		if err := p.CheckArgs(); err != nil {
			return err
		}
	case "rm", "delete":
		if err := need(2, "library name"); err != nil {
			return err
		}
		lib, err := po.ParseLibrary(args[0])
		if err != nil {
			return err
		}
		if err := s.Delete(lib, args[1]); err != nil {
			return fmt.Errorf("could not delete %v: %v", args[1], err)
		}
	case "presets":
		for _, p := range presets.Load() {
			user := ""
			if p.User {
				user = " (user)"
			}
			fmt.Printf("%-10v %-20v %v%v\n", p.Library, p.Name, p.Spec, user)
		}
	default:
		return fmt.Errorf("unknown command %v", cmd)
	}
	return nil
}

func get(s *store.Store, library, name string) (store.Entry, error) {
	lib, err := po.ParseLibrary(library)
	if err != nil {
		return store.Entry{}, err
	}
	e, err := s.Get(lib, name)
	if errors.Is(err, store.ErrNotFound) {
		return e, fmt.Errorf("no entry %v in the %v library", name, lib)
	}
	return e, err
}

func dirOf(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return "."
	}
	return path[:i]
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `pogen library. Keeps named parameter objects in a database.
Usage: %s [flags] command [args]

Commands:
  add library name spec [doc]   validate and store a specification
  import preset [name]          store a builtin or user preset
  list [library]                list the stored entries
  show library name             show an entry
  rm library name               delete an entry
  presets                       list the available presets

`, os.Args[0])
	flag.PrintDefaults()
}
