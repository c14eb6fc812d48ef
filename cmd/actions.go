package cmd

import (
	"io"

	"github.com/mattsolo1/nbread/cmd/config"
	"github.com/mattsolo1/nbread/pkg/display"
	"github.com/mattsolo1/nbread/pkg/models"
	"github.com/mattsolo1/nbread/pkg/search"
	"github.com/mattsolo1/nbread/pkg/service"
)

// action runs one query against a loaded notebook and writes the result.
type action struct {
	svc      *service.Service
	settings *config.Settings
	out      io.Writer
	noOutput bool
}

func (a *action) structured() bool {
	return a.settings.Format != config.FormatText
}

func (a *action) printer() *display.Printer {
	var opts []display.FormatOption
	if a.settings.MaxLines > 0 {
		opts = append(opts, display.WithMaxLines(a.settings.MaxLines))
	}
	if a.settings.Highlight {
		opts = append(opts, display.WithHighlight(a.settings.Style))
	}
	return display.NewPrinter(a.out, opts...)
}

type summaryReport struct {
	Cells   int                `json:"cells" yaml:"cells"`
	Showing int                `json:"showing" yaml:"showing"`
	Entries []service.CellInfo `json:"summary" yaml:"summary"`
}

func (a *action) summary(cellType, tagPattern string) error {
	filter, err := service.NewSummaryFilter(cellType, tagPattern)
	if err != nil {
		return err
	}
	entries := a.svc.FilterSummary(a.svc.Summarize(), filter)

	if a.structured() {
		return writeStructured(a.out, a.settings.Format, summaryReport{
			Cells:   a.svc.Len(),
			Showing: len(entries),
			Entries: entries,
		})
	}
	a.printer().Summary(a.svc, entries)
	return nil
}

type cellReport struct {
	Index  int          `json:"index" yaml:"index"`
	Found  bool         `json:"found" yaml:"found"`
	Type   string       `json:"type,omitempty" yaml:"type,omitempty"`
	Source string       `json:"source,omitempty" yaml:"source,omitempty"`
	Output string       `json:"output,omitempty" yaml:"output,omitempty"`
	Cell   *models.Cell `json:"cell,omitempty" yaml:"cell,omitempty"`
}

func (a *action) cell(index int) error {
	if !a.structured() {
		a.printer().Cell(a.svc, index, !a.noOutput)
		return nil
	}

	report := cellReport{Index: index}
	if cell := a.svc.Cell(index); cell != nil {
		report.Found = true
		report.Type = cell.Type()
		report.Source, _ = a.svc.CellSource(index, a.settings.MaxLines)
		if !a.noOutput && cell.IsCode() {
			report.Output, _ = a.svc.CellOutput(index, a.settings.MaxLines)
		}
		report.Cell = cell
	}
	return writeStructured(a.out, a.settings.Format, report)
}

func (a *action) initCells() error {
	cells := a.svc.InitializationCells()
	if !a.structured() {
		a.printer().InitCells(a.svc, cells, !a.noOutput)
		return nil
	}

	if a.noOutput {
		for i := range cells {
			cells[i].Cell = nil
		}
	}
	if cells == nil {
		cells = []service.InitCell{}
	}
	return writeStructured(a.out, a.settings.Format, cells)
}

func (a *action) errorCells() error {
	cells := a.svc.ErrorCells()
	if !a.structured() {
		a.printer().ErrorCells(a.svc, cells, !a.noOutput)
		return nil
	}

	if a.noOutput {
		for i := range cells {
			cells[i].Cell = nil
		}
	}
	if cells == nil {
		cells = []service.ErrorCell{}
	}
	return writeStructured(a.out, a.settings.Format, cells)
}

func (a *action) search(pattern string) error {
	results, err := a.svc.SearchCells(pattern,
		search.CaseSensitive(a.settings.CaseSensitive),
		search.WithMaxMatches(a.settings.MaxMatches),
	)
	if err != nil {
		return err
	}

	if a.structured() {
		return writeStructured(a.out, a.settings.Format, results)
	}
	a.printer().SearchResults(results)
	return nil
}
