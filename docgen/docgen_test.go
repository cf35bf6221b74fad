package docgen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/pogen/docgen"
	"github.com/vsariola/pogen/po"
)

func TestEntryText(t *testing.T) {
	g, err := docgen.New()
	require.NoError(t, err)
	info, ok := po.Lookup("ws")
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, g.Entry(&buf, docgen.Text, info))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "waveSine (ws)\n"), out)
	assert.Contains(t, out, "usage:   waveSine, stepString, secPerCycle, phase, min, max")
	assert.Contains(t, out, "example: waveSine,e,30,0,0,1")
	assert.Contains(t, out, "1. stepString")
}

func TestReferenceFormats(t *testing.T) {
	g, err := docgen.New()
	require.NoError(t, err)
	for _, format := range []docgen.Format{docgen.Text, docgen.Markdown, docgen.HTML} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, g.Reference(&buf, format, po.FilterLib))
			out := buf.String()
			for _, info := range po.Registered(po.FilterLib) {
				assert.Contains(t, out, info.Name)
			}
			assert.NotContains(t, out, "waveSine")
		})
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	g, err := docgen.New()
	require.NoError(t, err)
	info, ok := po.Lookup("mv")
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, g.Entry(&buf, docgen.Markdown, info))
	assert.Contains(t, buf.String(), `a=5\|b=4`)
	buf.Reset()
	require.NoError(t, g.Entry(&buf, docgen.HTML, info))
	assert.Contains(t, buf.String(), "<table>")
	assert.Contains(t, buf.String(), "a=5|b=4")
}

func TestParseFormat(t *testing.T) {
	f, err := docgen.ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, docgen.Markdown, f)
	_, err = docgen.ParseFormat("pdf")
	assert.Error(t, err)
}
