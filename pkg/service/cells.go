package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/nbread/pkg/models"
)

const (
	errorTextMaxRunes = 500
	noOutputMarker    = "No output"

	// OutputErrorType is reported for failures detected only from output text.
	OutputErrorType  = "OutputError"
	outputErrorValue = "Error text in output"
)

// InitCell is a code cell that looks like notebook setup
type InitCell struct {
	Index int          `json:"index" yaml:"index"`
	Cell  *models.Cell `json:"cell,omitempty" yaml:"cell,omitempty"`
	Type  string       `json:"type" yaml:"type"`
}

// CellError describes the failure found in a cell's outputs
type CellError struct {
	Type      string   `json:"type" yaml:"type"`
	Value     string   `json:"value" yaml:"value"`
	Traceback []string `json:"traceback,omitempty" yaml:"traceback,omitempty"`
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// ErrorCell is a code cell whose outputs contain an error
type ErrorCell struct {
	Index int          `json:"index" yaml:"index"`
	Cell  *models.Cell `json:"cell,omitempty" yaml:"cell,omitempty"`
	Error CellError    `json:"error" yaml:"error"`
}

// InitializationCells returns the code cells that install packages, import
// modules or define setup helpers, each labelled with its kind.
func (s *Service) InitializationCells() []InitCell {
	var cells []InitCell
	for i := range s.notebook.Cells {
		cell := &s.notebook.Cells[i]
		if !cell.IsCode() {
			continue
		}
		source := cell.Source.String()
		if !containsAny(source, initMarkers) {
			continue
		}
		label, _ := classify(initTypeRules, source)
		cells = append(cells, InitCell{Index: i, Cell: cell, Type: label})
	}
	s.logger.WithFields(logrus.Fields{"cells": len(cells)}).Debug("found initialization cells")
	return cells
}

// ErrorCells returns the code cells with a failure in their outputs. Each
// cell appears at most once; a structural error output is preferred over
// error-looking stream text.
func (s *Service) ErrorCells() []ErrorCell {
	var cells []ErrorCell
	for i := range s.notebook.Cells {
		cell := &s.notebook.Cells[i]
		if !cell.IsCode() {
			continue
		}
		if cellErr, ok := findCellError(cell.Outputs); ok {
			cells = append(cells, ErrorCell{Index: i, Cell: cell, Error: cellErr})
		}
	}
	s.logger.WithFields(logrus.Fields{"cells": len(cells)}).Debug("found error cells")
	return cells
}

func findCellError(outputs []models.Output) (CellError, bool) {
	for i := range outputs {
		out := &outputs[i]
		if out.IsError() {
			traceback := out.Traceback
			if traceback == nil {
				traceback = []string{}
			}
			return CellError{
				Type:      out.ErrorName(),
				Value:     out.ErrorValue(),
				Traceback: traceback,
			}, true
		}
	}

	for i := range outputs {
		out := &outputs[i]
		if !out.HasText() {
			continue
		}
		text := out.TextString()
		if containsAny(strings.ToLower(text), errorTextMarkers) {
			return CellError{
				Type:  OutputErrorType,
				Value: outputErrorValue,
				Text:  truncateRunes(text, errorTextMaxRunes),
			}, true
		}
	}

	return CellError{}, false
}

// CellSource returns the cell's source. When maxLines > 0 and the source is
// stored as a line list, only the first maxLines lines are returned.
// ok is false when index is out of range.
func (s *Service) CellSource(index, maxLines int) (source string, ok bool) {
	cell := s.Cell(index)
	if cell == nil {
		return "", false
	}
	return cell.Source.Head(maxLines), true
}

// CellOutput renders the cell's outputs as display text. When maxLines > 0,
// tracebacks and line-list stream text are cut to maxLines lines.
// ok is false when index is out of range.
func (s *Service) CellOutput(index, maxLines int) (output string, ok bool) {
	cell := s.Cell(index)
	if cell == nil {
		return "", false
	}

	var lines []string
	for i := range cell.Outputs {
		out := &cell.Outputs[i]
		switch {
		case out.IsError():
			lines = append(lines, "ERROR: "+out.ErrorName()+": "+out.ErrorValue())
			if len(out.Traceback) > 0 {
				lines = append(lines, "\nTraceback:")
				lines = append(lines, headLines(out.Traceback, maxLines)...)
			}
		case out.HasText():
			if out.Text.Kind == models.TextLines {
				lines = append(lines, headLines(out.Text.Lines, maxLines)...)
			} else {
				lines = append(lines, out.Text.String())
			}
		default:
			if plain, ok := out.PlainText(); ok {
				lines = append(lines, plain)
			}
		}
	}

	if len(lines) == 0 {
		return noOutputMarker, true
	}
	return strings.Join(lines, "\n"), true
}

func headLines(lines []string, n int) []string {
	if n > 0 && n < len(lines) {
		return lines[:n]
	}
	return lines
}
