package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	SetupLogging(LogConfig{Verbose: true, Writer: &buf})
	t.Cleanup(func() { SetupLogging(LogConfig{}) })

	Debug("materializing", "target", "/tmp/x")
	assert.Contains(t, buf.String(), "materializing")
	assert.Contains(t, buf.String(), "/tmp/x")
}

func TestSetupLogging_DefaultHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	SetupLogging(LogConfig{Writer: &buf, Timestamps: BoolPtr(false)})
	t.Cleanup(func() { SetupLogging(LogConfig{}) })

	Debug("hidden")
	Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()))
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestWriteStructured(t *testing.T) {
	v := map[string]string{"slug": "basic"}

	var js bytes.Buffer
	require.NoError(t, WriteStructured(&js, FormatJSON, v))
	assert.JSONEq(t, `{"slug":"basic"}`, js.String())

	var ym bytes.Buffer
	require.NoError(t, WriteStructured(&ym, FormatYAML, v))
	assert.Equal(t, "slug: basic\n", ym.String())

	assert.Error(t, WriteStructured(&ym, FormatTable, v))
}

func TestRenderFileTree(t *testing.T) {
	out := RenderFileTree("myapp", []TreeEntry{
		{Path: "myapp/__init__.py"},
		{Path: "README.md", Status: StatusCreated},
		{Path: "static/", Status: StatusSkipped},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "myapp/")
	assert.Equal(t, "├── myapp/", lines[1])
	assert.Equal(t, "│   └── __init__.py", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "├── static/"))
	assert.Contains(t, lines[3], StatusSkipped)
	assert.True(t, strings.HasPrefix(lines[4], "└── README.md"))
	assert.Contains(t, lines[4], StatusCreated)
}

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("x", nil))
}

func TestRenderFileTree_NestedOrder(t *testing.T) {
	out := RenderFileTree("p", []TreeEntry{{Path: "b.txt"}, {Path: "a/z.txt"}, {Path: "a/b.txt"}})
	assert.True(t, strings.HasSuffix(out, "\n├── a/\n│   ├── b.txt\n│   └── z.txt\n└── b.txt\n"), out)
}

func TestRenderDiff(t *testing.T) {
	assert.Empty(t, RenderDiff("f.py", "same\n", "same\n"))

	out := RenderDiff("f.py", "a\nb\n", "a\nb\nc\n")
	assert.Contains(t, out, "--- f.py")
	assert.Contains(t, out, "+c")

	out = RenderDiff("f.py", "a\nb\nc\n", "a\nb\nnew\nc\n")
	assert.Contains(t, out, " b\n+new\n c\n")
}

func TestFormatStatusLine(t *testing.T) {
	line := FormatStatusLine("myapp/__init__.py", StatusInserted)
	assert.Contains(t, line, "myapp/__init__.py")
	assert.Contains(t, line, "inserted")
}

func TestTable(t *testing.T) {
	tbl := NewTable("SLUG", "TYPE").Row("flask", "app").Row("lambda", "function")

	assert.Equal(t, 2, tbl.Len())
	out := tbl.String()
	for _, want := range []string{"SLUG", "TYPE", "flask", "app", "lambda", "function"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "flask"), strings.Index(out, "lambda"))
}
