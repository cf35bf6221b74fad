package automata

import (
	"strings"

	"github.com/viterin/vek"
	"github.com/vsariola/pogen"
)

type (
	// Reduction tells how Extract turns the selected part of a table into
	// output values.
	Reduction int

	// Cell tells which cells of a row Extract reads, and whether their values
	// or their column indexes are used.
	Cell int

	// TableFormat is a parsed table extraction string, such as "sumRow" or
	// "flatColumnReflectIndexActive".
	TableFormat struct {
		Reduction Reduction
		Column    bool // read columns instead of rows
		Reflect   bool // reverse each row (flat only)
		Cell      Cell
	}

	// Table is a rectangular table of values, such as the history of an
	// automaton, with a fixed minimum used for normalization.
	Table struct {
		data [][]float64
		cols int
		min  float64
	}
)

const (
	Whole Reduction = iota
	Flat
	Sum
	Average
	Product
)

const (
	Value Cell = iota
	Index
	ValueActive
	ValuePassive
	IndexActive
	IndexPassive
)

var cellNames = [...]string{"", "Index", "Active", "Passive", "IndexActive", "IndexPassive"}

var tableAliases = map[string][]string{
	"flatRow":    {"fr", "f", "flat"},
	"sumRow":     {"sr", "sum", "s"},
	"averageRow": {"ar", "average", "a"},
	"productRow": {"pr", "product", "p"},
	"table":      {"t"},
}

// TableFormats lists every valid extraction format. Aliases are acronyms:
// "sria" is sumRowIndexActive.
var TableFormats = func() pogen.Options {
	ret := pogen.Options{{Name: "table", Aliases: tableAliases["table"]}}
	add := func(name string) {
		aliases := append([]string{strings.ToLower(pogen.Acronym(name))}, tableAliases[name]...)
		ret = append(ret, pogen.Option{Name: name, Aliases: aliases})
	}
	for _, red := range []string{"flat", "sum", "average", "product"} {
		for _, dir := range []string{"Row", "Column"} {
			reflects := []string{""}
			if red == "flat" {
				reflects = []string{"", "Reflect"}
			}
			for _, refl := range reflects {
				for _, cell := range cellNames {
					add(red + dir + refl + cell)
				}
			}
		}
	}
	return ret
}()

// ParseTableFormat resolves a table extraction string or its acronym.
func ParseTableFormat(v pogen.Value) (TableFormat, error) {
	i, err := TableFormats.Parse(v, "table format")
	if err != nil {
		return TableFormat{}, err
	}
	name := strings.ToLower(TableFormats.Name(i))
	f := TableFormat{Column: strings.Contains(name, "column"), Reflect: strings.Contains(name, "reflect")}
	switch {
	case strings.HasPrefix(name, "flat"):
		f.Reduction = Flat
	case strings.HasPrefix(name, "sum"):
		f.Reduction = Sum
	case strings.HasPrefix(name, "average"):
		f.Reduction = Average
	case strings.HasPrefix(name, "product"):
		f.Reduction = Product
	}
	switch {
	case strings.Contains(name, "indexactive"):
		f.Cell = IndexActive
	case strings.Contains(name, "indexpassive"):
		f.Cell = IndexPassive
	case strings.Contains(name, "index"):
		f.Cell = Index
	case strings.Contains(name, "active"):
		f.Cell = ValueActive
	case strings.Contains(name, "passive"):
		f.Cell = ValuePassive
	}
	return f, nil
}

func (f TableFormat) String() string {
	if f.Reduction == Whole {
		return "table"
	}
	name := [...]string{"", "flat", "sum", "average", "product"}[f.Reduction]
	if f.Column {
		name += "Column"
	} else {
		name += "Row"
	}
	if f.Reflect && f.Reduction == Flat {
		name += "Reflect"
	}
	return name + cellNames[f.Cell]
}

// NewTable wraps rows of equal length. min is the smallest value a cell can
// have; it is used as the lower end when normalizing.
func NewTable(rows [][]float64, min float64) *Table {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	return &Table{data: rows, cols: cols, min: min}
}

// Extract reads rows [start, end) of the table, a window of width columns
// centered at the middle column shifted by offset, and reduces them according
// to the format. Column indexes wrap around. A negative end means all rows,
// and a width of zero or less means the whole row. If norm is true, values are
// normalized between the table minimum and the maximum of the output.
func (t *Table) Extract(f TableFormat, norm bool, start, end, offset, width int) [][]float64 {
	rows := len(t.data)
	if rows == 0 || t.cols == 0 {
		return nil
	}
	if end < 0 {
		end = rows
	}
	if width <= 0 {
		width = t.cols
	}
	start = ((start % rows) + rows) % rows
	end = ((end % (rows + 1)) + rows + 1) % (rows + 1)
	c := t.cols/2 + offset
	lo, hi := c-width/2, c-width/2+width
	var sel [][]float64
	for r := start; r < end; r++ {
		sel = append(sel, t.slice(t.data[r], lo, hi, f.Cell))
	}
	if f.Reduction == Whole {
		if norm {
			return normTable(sel)
		}
		return sel
	}
	if f.Column {
		sel = rotate(sel)
	}
	var out []float64
	switch f.Reduction {
	case Flat:
		for _, row := range sel {
			if f.Reflect {
				for i := len(row) - 1; i >= 0; i-- {
					out = append(out, row[i])
				}
			} else {
				out = append(out, row...)
			}
		}
	case Sum, Average, Product:
		w := 0
		if len(sel) > 0 {
			w = len(sel[0])
		}
		for _, row := range sel {
			out = append(out, reduce(f.Reduction, row, w))
		}
	}
	if norm {
		out = t.normRange(out)
	}
	return [][]float64{out}
}

// ExtractFlat is Extract for formats other than the whole table, returning a
// single list.
func (t *Table) ExtractFlat(f TableFormat, norm bool, start, end, offset, width int) []float64 {
	rows := t.Extract(f, norm, start, end, offset, width)
	var ret []float64
	for _, r := range rows {
		ret = append(ret, r...)
	}
	return ret
}

func (t *Table) slice(row []float64, lo, hi int, cell Cell) []float64 {
	var ret []float64
	n := len(row)
	for i := lo; i < hi; i++ {
		q := ((i % n) + n) % n
		v := row[q]
		switch cell {
		case Index:
			ret = append(ret, float64(q))
		case ValueActive:
			if v > 0 {
				ret = append(ret, v)
			}
		case ValuePassive:
			if v == 0 {
				ret = append(ret, v)
			}
		case IndexActive:
			if v > 0 {
				ret = append(ret, float64(q))
			}
		case IndexPassive:
			if v == 0 {
				ret = append(ret, float64(q))
			}
		default:
			ret = append(ret, v)
		}
	}
	return ret
}

func reduce(r Reduction, row []float64, width int) float64 {
	switch r {
	case Sum:
		if len(row) == 0 {
			return 0
		}
		return vek.Sum(row)
	case Average:
		if len(row) == 0 || width == 0 {
			return 0
		}
		return vek.Sum(row) / float64(width)
	default:
		if len(row) == 0 {
			return 1
		}
		return vek.Prod(row)
	}
}

// rotate turns columns into rows. Rows may be of unequal length, in which
// case values slide into the shorter columns.
func rotate(data [][]float64) [][]float64 {
	spread := 0
	for _, row := range data {
		if len(row) > spread {
			spread = len(row)
		}
	}
	ret := make([][]float64, spread)
	for i := range ret {
		for _, row := range data {
			if i < len(row) {
				ret[i] = append(ret[i], row[i])
			}
		}
	}
	return ret
}

func (t *Table) normRange(series []float64) []float64 {
	ret := make([]float64, len(series))
	if len(series) < 2 {
		return ret
	}
	span := vek.Max(series) - t.min
	if span == 0 {
		return ret
	}
	for i, v := range series {
		ret[i] = (v - t.min) / span
	}
	return ret
}

func normTable(data [][]float64) [][]float64 {
	var all []float64
	for _, row := range data {
		all = append(all, row...)
	}
	ret := make([][]float64, len(data))
	if len(all) == 0 {
		return ret
	}
	lo, hi := vek.Min(all), vek.Max(all)
	for i, row := range data {
		ret[i] = make([]float64, len(row))
		if hi == lo {
			continue
		}
		for j, v := range row {
			ret[i][j] = (v - lo) / (hi - lo)
		}
	}
	return ret
}
