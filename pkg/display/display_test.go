package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/nbread/pkg/models"
	"github.com/mattsolo1/nbread/pkg/search"
	"github.com/mattsolo1/nbread/pkg/service"
)

func testService(t *testing.T) *service.Service {
	t.Helper()
	nb, err := service.Parse("display.ipynb", []byte(`{
		"cells": [
			{"cell_type": "markdown", "source": ["# Title\n", "Intro"]},
			{
				"cell_type": "code",
				"source": ["# COMPREHENSIVE IMPORTS\n", "import os\n", "import sys"],
				"outputs": [{"output_type": "stream", "name": "stdout", "text": ["ok\n"]}]
			},
			{
				"cell_type": "code",
				"source": ["raise ValueError('bad input')"],
				"outputs": [{"output_type": "error", "ename": "ValueError", "evalue": "bad input", "traceback": ["line1", "line2"]}]
			},
			{"cell_type": "code", "source": [], "outputs": []}
		],
		"metadata": {"language_info": {"name": "python"}}
	}`))
	require.NoError(t, err)
	return service.New(nb, nil)
}

func TestFormatCell(t *testing.T) {
	svc := testService(t)
	bar := strings.Repeat("=", 60)

	tests := []struct {
		name          string
		index         int
		includeOutput bool
		opts          []FormatOption
		want          string
	}{
		{
			name:          "markdown ignores output",
			index:         0,
			includeOutput: true,
			want:          "\n" + bar + "\nCELL 0 (markdown)\n" + bar + "\nSOURCE:\n# Title\nIntro",
		},
		{
			name:          "code with output",
			index:         1,
			includeOutput: true,
			want:          "\n" + bar + "\nCELL 1 (code)\n" + bar + "\nSOURCE:\n# COMPREHENSIVE IMPORTS\nimport os\nimport sys\n\nOUTPUT:\nok\n",
		},
		{
			name:          "code without output",
			index:         1,
			includeOutput: false,
			want:          "\n" + bar + "\nCELL 1 (code)\n" + bar + "\nSOURCE:\n# COMPREHENSIVE IMPORTS\nimport os\nimport sys",
		},
		{
			name:          "error output",
			index:         2,
			includeOutput: true,
			want: "\n" + bar + "\nCELL 2 (code)\n" + bar + "\nSOURCE:\nraise ValueError('bad input')" +
				"\n\nOUTPUT:\nERROR: ValueError: bad input\n\nTraceback:\nline1\nline2",
		},
		{
			name:          "max lines",
			index:         2,
			includeOutput: true,
			opts:          []FormatOption{WithMaxLines(1)},
			want: "\n" + bar + "\nCELL 2 (code)\n" + bar + "\nSOURCE:\nraise ValueError('bad input')" +
				"\n\nOUTPUT:\nERROR: ValueError: bad input\n\nTraceback:\nline1",
		},
		{
			name:          "empty source",
			index:         3,
			includeOutput: true,
			want:          "\n" + bar + "\nCELL 3 (code)\n" + bar + "\n\nOUTPUT:\nNo output",
		},
		{
			name:          "not found",
			index:         9,
			includeOutput: true,
			want:          "Cell 9 not found",
		},
		{
			name:          "negative index",
			index:         -1,
			includeOutput: true,
			want:          "Cell -1 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(svc, tt.index, tt.includeOutput, tt.opts...))
		})
	}
}

func TestFormatCellHighlight(t *testing.T) {
	svc := testService(t)

	got := FormatCell(svc, 1, false, WithHighlight("monokai"))
	assert.Contains(t, got, "CELL 1 (code)")
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "import")
	assert.NotEqual(t, FormatCell(svc, 1, false), got)
}

func TestHighlightUnknownLanguage(t *testing.T) {
	out, err := Highlight("some text", "no-such-language", "no-such-style")
	require.NoError(t, err)
	assert.Contains(t, out, "some")
}

func TestPrinterSummary(t *testing.T) {
	svc := testService(t)
	var buf bytes.Buffer

	NewPrinter(&buf).Summary(svc, svc.Summarize())

	want := "\nNotebook has 4 cells (3 code, 1 markdown):\n\n" +
		"Cell   0: markdown (   2 lines)\n" +
		"         # Title\n" +
		"Cell   1: code     (   3 lines) [IMPORTS]\n" +
		"         # COMPREHENSIVE IMPORTS\n" +
		"Cell   2: code     (   1 lines) [ERROR]\n" +
		"         raise ValueError('bad input')\n" +
		"Cell   3: code     (   0 lines)\n" +
		"         [empty cell]\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinterSummaryFiltered(t *testing.T) {
	svc := testService(t)
	f, err := service.NewSummaryFilter(models.CellTypeMarkdown, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	NewPrinter(&buf).Summary(svc, svc.FilterSummary(svc.Summarize(), f))

	assert.Contains(t, buf.String(), "Notebook has 4 cells")
	assert.Contains(t, buf.String(), "Showing 1 matching cells")
	assert.NotContains(t, buf.String(), "Cell   1:")
}

func TestPrinterInitCells(t *testing.T) {
	svc := testService(t)

	var buf bytes.Buffer
	NewPrinter(&buf).InitCells(svc, svc.InitializationCells(), false)
	assert.Equal(t, "\nFound 1 initialization cells:\n\nCell 1: IMPORTS\n", buf.String())

	buf.Reset()
	NewPrinter(&buf).InitCells(svc, svc.InitializationCells(), true)
	assert.Contains(t, buf.String(), "CELL 1 (code)")
	assert.NotContains(t, buf.String(), "OUTPUT:")
}

func TestPrinterErrorCells(t *testing.T) {
	svc := testService(t)

	var buf bytes.Buffer
	NewPrinter(&buf).ErrorCells(svc, svc.ErrorCells(), false)
	assert.Equal(t, "\nFound 1 cells with errors:\n\n\nCell 2:\n  Error Type: ValueError\n  Error Value: bad input\n", buf.String())

	buf.Reset()
	NewPrinter(&buf).ErrorCells(svc, svc.ErrorCells(), true)
	assert.Contains(t, buf.String(), "OUTPUT:\nERROR: ValueError: bad input")

	buf.Reset()
	NewPrinter(&buf).ErrorCells(svc, nil, true)
	assert.Equal(t, "No error cells found\n", buf.String())
}

func TestPrinterSearchResults(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).SearchResults([]search.Result{
		{Index: 1, Type: "code", Matches: []string{"import", "import"}},
	})

	assert.Equal(t, "\nFound pattern in 1 cells:\nCell 1 (code): [\"import\", \"import\"]\n", buf.String())
}
