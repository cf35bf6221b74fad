// Package docgen renders the reference of the registered parameter objects as
// plain text, markdown or html, from text/templates.
package docgen

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	md "github.com/russross/blackfriday/v2"
	"github.com/vsariola/pogen/po"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Generator struct {
		Template *template.Template
		Title    string
	}

	Format int

	Reference struct {
		Title    string
		Sections []Section
	}

	Section struct {
		Title   string
		Library po.Library
		Entries []Entry
	}

	// Entry is the template data of one parameter object.
	Entry struct {
		*po.Info
		Example string
	}
)

const (
	Text Format = iota
	Markdown
	HTML
)

//go:embed templates/*
var templateFS embed.FS

var formatNames = [...]string{"text", "markdown", "html"}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "t":
		return Text, nil
	case "markdown", "md", "m":
		return Markdown, nil
	case "html", "h":
		return HTML, nil
	}
	return Text, fmt.Errorf("unknown format %q, expected text, markdown or html", s)
}

func (f Format) String() string {
	if int(f) < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// New returns a Generator using the embedded templates.
func New() (*Generator, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Generator{Template: tmpl, Title: "pogen parameter objects"}, nil
}

// NewFromTemplates returns a Generator using the templates in a directory,
// which must define po.txt, reference.txt, po.md and reference.md.
func NewFromTemplates(templateDirectory string) (*Generator, error) {
	globPtrn := filepath.Join(templateDirectory, "*.tmpl")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create templates based on directory "%v": %v`, templateDirectory, err)
	}
	return &Generator{Template: tmpl, Title: "pogen parameter objects"}, nil
}

// NewEntry returns the template data of a parameter object.
func NewEntry(info *po.Info) Entry {
	return Entry{Info: info, Example: strings.Trim(info.Defaults().String(), "()")}
}

// Anchor is the html id of the entry heading in the markdown reference.
func (e Entry) Anchor() string {
	return strings.ToLower(e.Name + "-" + e.Acronym)
}

// NewReference collects the parameter objects of the libraries; no libraries
// means all of them.
func (g *Generator) NewReference(libs ...po.Library) Reference {
	if len(libs) == 0 {
		libs = []po.Library{po.GeneratorLib, po.RhythmLib, po.TextureLib, po.CloneLib, po.FilterLib}
	}
	caser := cases.Title(language.English)
	ret := Reference{Title: caser.String(g.Title)}
	for _, lib := range libs {
		s := Section{Title: caser.String(lib.Title()), Library: lib}
		for _, info := range po.Registered(lib) {
			s.Entries = append(s.Entries, NewEntry(info))
		}
		ret.Sections = append(ret.Sections, s)
	}
	return ret
}

// Reference writes the reference of the libraries.
func (g *Generator) Reference(w io.Writer, format Format, libs ...po.Library) error {
	return g.render(w, format, "reference", g.NewReference(libs...))
}

// Entry writes the reference of a single parameter object.
func (g *Generator) Entry(w io.Writer, format Format, info *po.Info) error {
	return g.render(w, format, "po", NewEntry(info))
}

func (g *Generator) render(w io.Writer, format Format, name string, data interface{}) error {
	ext := ".txt"
	if format != Text {
		ext = ".md"
	}
	var buf bytes.Buffer
	if err := g.Template.ExecuteTemplate(&buf, name+ext, data); err != nil {
		return fmt.Errorf(`could not execute template "%v": %v`, name+ext, err)
	}
	if format != HTML {
		_, err := w.Write(buf.Bytes())
		return err
	}
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(g.Title))
	w.Write(md.Run(buf.Bytes(), md.WithExtensions(md.CommonExtensions|md.AutoHeadingIDs)))
	_, err := fmt.Fprintf(w, "</body>\n</html>\n")
	return err
}
