package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/nbread/pkg/search"
	"github.com/mattsolo1/nbread/pkg/service"
)

const testNotebook = `{
	"cells": [
		{"cell_type": "markdown", "source": ["# Title\n"]},
		{"cell_type": "code", "source": ["import subprocess\n", "import os\n"], "outputs": []},
		{
			"cell_type": "code",
			"source": ["@safe_cell_execution(\"train\")\n", "def train():\n", "    fit()\n"],
			"outputs": [{"output_type": "error", "ename": "KeyError", "evalue": "'x'", "traceback": ["tb1", "tb2", "tb3"]}]
		}
	],
	"metadata": {"kernelspec": {"language": "python"}}
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "test.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(testNotebook), 0644))

	root := NewRootCmd()
	root.AddCommand(NewVersionCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	full := make([]string, 0, len(args)+1)
	for _, a := range args {
		if a == "NOTEBOOK" {
			a = path
		}
		full = append(full, a)
	}
	root.SetArgs(full)

	err := root.Execute()
	return out.String(), err
}

func TestRootHelpWithoutAction(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK")
	require.NoError(t, err)
	assert.Contains(t, out, "Inspect a Jupyter notebook")
	assert.Contains(t, out, "--summary")

	out, err = runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestRootSummary(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK", "--summary")
	require.NoError(t, err)

	assert.Contains(t, out, "Notebook has 3 cells (2 code, 1 markdown):")
	assert.Contains(t, out, "Cell   1: code     (   2 lines)\n         import subprocess\n")
	assert.Contains(t, out, "Cell   2: code     (   3 lines) [FUNCTION: train] [ERROR]\n")
}

func TestRootSummaryFilters(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK", "--summary", "--tag", "FUNCTION:*")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 1 matching cells")
	assert.Contains(t, out, "Cell   2:")
	assert.NotContains(t, out, "Cell   1:")

	_, err = runCLI(t, "NOTEBOOK", "--summary", "--tag", "[broken")
	assert.Error(t, err)
}

func TestRootCell(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK", "--cell", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "CELL 2 (code)")
	assert.Contains(t, out, "SOURCE:\n@safe_cell_execution(\"train\")\n")
	assert.Contains(t, out, "OUTPUT:\nERROR: KeyError: 'x'\n\nTraceback:\ntb1\ntb2\ntb3")

	out, err = runCLI(t, "NOTEBOOK", "--cell", "2", "--no-output")
	require.NoError(t, err)
	assert.NotContains(t, out, "OUTPUT:")

	out, err = runCLI(t, "NOTEBOOK", "--cell", "2", "--max-lines", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "SOURCE:\n@safe_cell_execution(\"train\")\n\n\nOUTPUT:")
	assert.Contains(t, out, "Traceback:\ntb1\n")
	assert.NotContains(t, out, "tb2")

	// Index 0 is a valid request even though it is the flag's default.
	out, err = runCLI(t, "NOTEBOOK", "--cell", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "CELL 0 (markdown)")

	out, err = runCLI(t, "NOTEBOOK", "--cell", "42")
	require.NoError(t, err)
	assert.Equal(t, "Cell 42 not found\n", out)
}

func TestRootInit(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK", "--init", "--no-output")
	require.NoError(t, err)
	assert.Equal(t, "\nFound 1 initialization cells:\n\nCell 1: SETUP\n", out)
}

func TestRootErrors(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK", "--errors", "--no-output")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 cells with errors:")
	assert.Contains(t, out, "Cell 2:\n  Error Type: KeyError\n  Error Value: 'x'\n")
	assert.NotContains(t, out, "SOURCE:")

	out, err = runCLI(t, "NOTEBOOK", "--errors")
	require.NoError(t, err)
	assert.Contains(t, out, "SOURCE:")
}

func TestRootSearch(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK", "--search", "IMPORT")
	require.NoError(t, err)
	assert.Equal(t, "\nFound pattern in 1 cells:\nCell 1 (code): [\"import\", \"import\"]\n", out)

	out, err = runCLI(t, "NOTEBOOK", "--search", "IMPORT", "--case-sensitive")
	require.NoError(t, err)
	assert.Contains(t, out, "Found pattern in 0 cells:")

	_, err = runCLI(t, "NOTEBOOK", "--search", "(unclosed")
	var invalid *search.InvalidPatternError
	assert.True(t, errors.As(err, &invalid))
}

func TestRootStructuredOutput(t *testing.T) {
	out, err := runCLI(t, "NOTEBOOK", "--errors", "--format", "json", "--no-output")
	require.NoError(t, err)

	var cells []service.ErrorCell
	require.NoError(t, json.Unmarshal([]byte(out), &cells))
	require.Len(t, cells, 1)
	assert.Equal(t, 2, cells[0].Index)
	assert.Equal(t, "KeyError", cells[0].Error.Type)
	assert.Nil(t, cells[0].Cell)

	out, err = runCLI(t, "NOTEBOOK", "--summary", "--format", "yaml")
	require.NoError(t, err)

	var report struct {
		Cells   int                `yaml:"cells"`
		Summary []service.CellInfo `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Cells)
	require.Len(t, report.Summary, 3)
	assert.Equal(t, "FUNCTION: train", report.Summary[2].Tag)

	out, err = runCLI(t, "NOTEBOOK", "--cell", "1", "--format", "json")
	require.NoError(t, err)
	var cell struct {
		Found  bool   `json:"found"`
		Source string `json:"source"`
		Output string `json:"output"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cell))
	assert.True(t, cell.Found)
	assert.Equal(t, "import subprocess\nimport os\n", cell.Source)
	assert.Equal(t, "No output", cell.Output)

	out, err = runCLI(t, "NOTEBOOK", "--search", "zzz", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestRootMissingNotebook(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ipynb")

	_, err := runCLI(t, missing, "--summary")
	require.Error(t, err)

	var notFound *service.NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), missing)
}

func TestRootMalformedNotebook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ipynb")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := runCLI(t, path, "--summary")
	var malformed *service.MalformedDocumentError
	assert.True(t, errors.As(err, &malformed))
}

func TestRootRequiresPathForAction(t *testing.T) {
	_, err := runCLI(t, "--summary")
	assert.ErrorContains(t, err, "notebook path is required")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version", "--json")
	require.NoError(t, err)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}
