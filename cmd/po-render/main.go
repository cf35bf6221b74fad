package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vsariola/pogen"
	"github.com/vsariola/pogen/config"
	"github.com/vsariola/pogen/po"
	"github.com/vsariola/pogen/presets"
	"github.com/vsariola/pogen/version"
)

type (
	// Job is one rendering task. With a rhythm, the generator gives the
	// pitches of the notes; without one, the generator values are rendered
	// as they are.
	Job struct {
		Name      string `json:"name" yaml:"name"`
		Generator string `json:"generator,omitempty" yaml:"generator,omitempty"`
		Rhythm    string `json:"rhythm,omitempty" yaml:"rhythm,omitempty"`
		Filter    string `json:"filter,omitempty" yaml:"filter,omitempty"`
		Count     int    `json:"count,omitempty" yaml:"count,omitempty"`
		Seed      uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	}

	Result struct {
		Name   string   `json:"name" yaml:"name"`
		Values []string `json:"values,omitempty" yaml:"values,omitempty,flow"`
		Notes  []Note   `json:"notes,omitempty" yaml:"notes,omitempty"`
		notes  []pogen.Note
	}

	Note struct {
		Start float64 `json:"start" yaml:"start"`
		Dur   float64 `json:"dur" yaml:"dur"`
		Sus   float64 `json:"sus" yaml:"sus"`
		Acc   float64 `json:"acc" yaml:"acc"`
		Pitch float64 `json:"pitch" yaml:"pitch"`
	}
)

func main() {
	cfg := config.Load()
	count := flag.Int("n", 20, "Number of values or notes to render.")
	seed := flag.Uint64("seed", cfg.Seed, "Seed of the random sources.")
	bpm := flag.Float64("bpm", cfg.BPM, "Tempo used to convert rhythm pulses to seconds.")
	rhythm := flag.String("r", "", "Rhythm specification; the generator arguments then give the pitches.")
	filter := flag.String("f", "", "Filter specification applied to the rendered values or pitches.")
	midiOut := flag.String("midi", "", "Write the notes of rhythm jobs as a Standard MIDI File to this path.")
	jsonOut := flag.Bool("j", false, "Output the results as json.")
	yamlOut := flag.Bool("y", false, "Output the results as yaml.")
	preset := flag.Bool("p", false, "Arguments are preset names instead of specifications.")
	quiet := flag.Bool("q", false, "Do not print warnings of the parameter objects.")
	jobs := flag.Int("jobs", runtime.NumCPU(), "Number of jobs rendered concurrently.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if (flag.NArg() == 0 && *rhythm == "") || *help {
		flag.Usage()
		os.Exit(0)
	}
	if cfg.YmlError != nil {
		fmt.Fprintf(os.Stderr, "could not read the user config, using defaults: %v\n", cfg.YmlError)
	}
	if *quiet {
		log.SetOutput(io.Discard)
	}
	cfg.Seed, cfg.BPM = *seed, *bpm
	retval := 0
	var todo []Job
	for _, param := range flag.Args() {
		if *preset {
			p, ok := presets.Load().Find(param)
			if !ok {
				fmt.Fprintf(os.Stderr, "no preset named %v\n", param)
				retval = 1
				continue
			}
			job := Job{Name: p.Name, Filter: *filter, Rhythm: *rhythm}
			switch p.Library {
			case po.RhythmLib:
				job.Rhythm = p.Spec
			case po.FilterLib:
				job.Filter = p.Spec
				job.Generator = "ru,0,1"
			default:
				job.Generator = p.Spec
			}
			todo = append(todo, job)
			continue
		}
		if ext := strings.ToLower(filepath.Ext(param)); ext == ".yml" || ext == ".yaml" || ext == ".json" {
			batch, err := readJobs(param)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
				continue
			}
			todo = append(todo, batch...)
			continue
		}
		todo = append(todo, Job{Name: param, Generator: param, Rhythm: *rhythm, Filter: *filter})
	}
	if flag.NArg() == 0 {
		todo = append(todo, Job{Name: *rhythm, Rhythm: *rhythm, Filter: *filter})
	}
	results := make([]Result, len(todo))
	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for i, job := range todo {
		if job.Count <= 0 {
			job.Count = *count
		}
		if job.Seed == 0 {
			job.Seed = cfg.Seed
		}
		g.Go(func() error {
			r, err := render(cfg, job)
			if err != nil {
				return fmt.Errorf("could not render %v: %v", job.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := output(os.Stdout, results, *jsonOut, *yamlOut); err != nil {
		fmt.Fprintf(os.Stderr, "could not write the results: %v\n", err)
		retval = 1
	}
	if *midiOut != "" {
		if err := writeMIDI(*midiOut, results, cfg.MIDIOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "could not write midi: %v\n", err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func readJobs(filename string) ([]Job, error) {
	inputBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read file %v: %v", filename, err)
	}
	var jobs []Job
	if errJSON := json.Unmarshal(inputBytes, &jobs); errJSON != nil {
		if errYaml := yaml.Unmarshal(inputBytes, &jobs); errYaml != nil {
			return nil, fmt.Errorf("jobs could not be unmarshaled as a .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	for i := range jobs {
		if jobs[i].Name == "" {
			jobs[i].Name = fmt.Sprintf("%v#%d", filepath.Base(filename), i+1)
		}
	}
	return jobs, nil
}

// render evaluates a job with its own factory, so jobs share no state.
func render(cfg config.Config, job Job) (Result, error) {
	cfg.Seed = job.Seed
	f := cfg.Factory()
	ctx := cfg.Context()
	ret := Result{Name: job.Name}
	var gen po.Generator
	if job.Generator != "" {
		var err error
		if gen, err = f.NewGenerator(job.Generator); err != nil {
			return ret, err
		}
	}
	var filter po.Filter
	if job.Filter != "" {
		var err error
		if filter, err = f.NewFilter(job.Filter); err != nil {
			return ret, err
		}
	}
	if job.Rhythm != "" {
		r, err := f.NewRhythm(job.Rhythm)
		if err != nil {
			return ret, err
		}
		var pitch pogen.Generator
		if gen != nil {
			pitch = gen
		}
		notes := pogen.RenderRhythm(r, pitch, job.Count, ctx)
		if filter != nil {
			values := make([]pogen.Value, len(notes))
			times := make([]float64, len(notes))
			ctxs := make([]*pogen.Context, len(notes))
			for i, n := range notes {
				values[i], times[i], ctxs[i] = pogen.NewFloat(n.Pitch), n.Start, ctx.WithPitch(n.Pitch, ctx.CurrentChord())
			}
			filtered, err := filter.Filter(values, times, ctxs)
			if err != nil {
				return ret, err
			}
			for i := range notes {
				notes[i].Pitch = filtered[i].Float()
			}
		}
		ret.notes = notes
		for _, n := range notes {
			ret.Notes = append(ret.Notes, Note{Start: n.Start, Dur: n.Dur, Sus: n.Sus, Acc: n.Acc, Pitch: n.Pitch})
		}
		return ret, nil
	}
	if gen == nil {
		return ret, fmt.Errorf("nothing to render")
	}
	values := pogen.Render(gen, job.Count, ctx)
	if filter != nil {
		times := make([]float64, len(values))
		ctxs := make([]*pogen.Context, len(values))
		for i := range times {
			times[i], ctxs[i] = float64(i), ctx
		}
		var err error
		if values, err = filter.Filter(values, times, ctxs); err != nil {
			return ret, err
		}
	}
	for _, v := range values {
		ret.Values = append(ret.Values, v.String())
	}
	return ret, nil
}

func output(w io.Writer, results []Result, jsonOut, yamlOut bool) error {
	switch {
	case jsonOut:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case yamlOut:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(results)
	}
	for _, r := range results {
		fmt.Fprintf(w, "%v\n", r.Name)
		if len(r.Values) > 0 {
			fmt.Fprintf(w, "  %v\n", strings.Join(r.Values, " "))
		}
		for _, n := range r.Notes {
			fmt.Fprintf(w, "  %8.3f  dur %.3f  sus %.3f  acc %.3f  pitch %v\n", n.Start, n.Dur, n.Sus, n.Acc, pogen.FormatNumber(n.Pitch))
		}
	}
	return nil
}

// writeMIDI writes one file per rhythm job; with several, the job index is
// appended to the file name.
func writeMIDI(path string, results []Result, opt pogen.MIDIOptions) error {
	var withNotes []Result
	for _, r := range results {
		if len(r.notes) > 0 {
			withNotes = append(withNotes, r)
		}
	}
	if len(withNotes) == 0 {
		return fmt.Errorf("no rhythm jobs to export")
	}
	ext := filepath.Ext(path)
	for i, r := range withNotes {
		data, err := pogen.MIDI(r.notes, opt)
		if err != nil {
			return fmt.Errorf("could not encode %v: %v", r.Name, err)
		}
		name := path
		if len(withNotes) > 1 {
			name = fmt.Sprintf("%v_%d%v", strings.TrimSuffix(path, ext), i+1, ext)
		}
		if err := os.WriteFile(name, data, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", name, err)
		}
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "pogen renderer. Renders generator specifications, or .yml and .json files of jobs.\nUsage: %s [flags] [spec|file ...]\n", os.Args[0])
	flag.PrintDefaults()
}
