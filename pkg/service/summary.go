package service

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/nbread/pkg/models"
)

const (
	firstLineScanDepth = 5
	firstLineMaxRunes  = 100
	firstLineSkipMark  = "#="
	emptyCellMarker    = "[empty cell]"
)

// CellInfo is one entry of the notebook summary
type CellInfo struct {
	Index          int    `json:"index" yaml:"index"`
	Type           string `json:"type" yaml:"type"`
	Lines          int    `json:"lines" yaml:"lines"`
	FirstLine      string `json:"first_line" yaml:"first_line"`
	Tag            string `json:"tag,omitempty" yaml:"tag,omitempty"`
	HasError       bool   `json:"has_error,omitempty" yaml:"has_error,omitempty"`
	ErrorType      string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	HasOutputError bool   `json:"has_output_error,omitempty" yaml:"has_output_error,omitempty"`
}

// Summarize returns one CellInfo per cell, in notebook order.
func (s *Service) Summarize() []CellInfo {
	summary := make([]CellInfo, 0, len(s.notebook.Cells))
	for i := range s.notebook.Cells {
		summary = append(summary, summarizeCell(i, &s.notebook.Cells[i]))
	}
	s.logger.WithFields(logrus.Fields{"cells": len(summary)}).Debug("summarized notebook")
	return summary
}

func summarizeCell(index int, cell *models.Cell) CellInfo {
	lines := cell.Source.SplitLines()
	info := CellInfo{
		Index:     index,
		Type:      cell.Type(),
		Lines:     len(lines),
		FirstLine: firstLine(lines),
	}

	if tag, ok := classify(summaryTagRules, cell.Source.String()); ok {
		info.Tag = tag
	}

	for i := range cell.Outputs {
		out := &cell.Outputs[i]
		switch {
		case out.IsError():
			if !info.HasError {
				info.HasError = true
				info.ErrorType = out.ErrorName()
			}
		case out.HasText():
			if containsAny(strings.ToLower(out.TextString()), summaryErrorMarkers) {
				info.HasOutputError = true
			}
		}
	}

	return info
}

// firstLine picks a representative line from the first few source lines,
// skipping blank lines and "#=" banner rules.
func firstLine(lines []string) string {
	if len(lines) == 0 {
		return emptyCellMarker
	}

	chosen := lines[0]
	for _, line := range lines[:min(len(lines), firstLineScanDepth)] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, firstLineSkipMark) {
			chosen = line
			break
		}
	}

	return strings.TrimSpace(truncateRunes(chosen, firstLineMaxRunes))
}

// truncateRunes cuts s to at most n characters without splitting a rune.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
