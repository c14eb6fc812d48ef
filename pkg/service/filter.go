package service

import (
	"fmt"

	"github.com/gobwas/glob"
)

// SummaryFilter narrows a summary to one cell type and/or tags matching a
// glob pattern such as "FUNCTION: *".
type SummaryFilter struct {
	cellType string
	tag      glob.Glob
}

// NewSummaryFilter compiles a filter. Empty arguments match everything.
func NewSummaryFilter(cellType, tagPattern string) (*SummaryFilter, error) {
	f := &SummaryFilter{cellType: cellType}
	if tagPattern != "" {
		g, err := glob.Compile(tagPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid tag pattern '%s': %w", tagPattern, err)
		}
		f.tag = g
	}
	return f, nil
}

// IsEmpty reports whether the filter lets every entry through.
func (f *SummaryFilter) IsEmpty() bool {
	return f == nil || (f.cellType == "" && f.tag == nil)
}

// FilterSummary keeps the entries accepted by f, preserving order.
func (s *Service) FilterSummary(summary []CellInfo, f *SummaryFilter) []CellInfo {
	if f.IsEmpty() {
		return summary
	}

	var ofType map[int]bool
	if f.cellType != "" {
		ofType = make(map[int]bool)
		for _, cell := range s.CellsByType(f.cellType) {
			ofType[s.indexOf(cell)] = true
		}
	}

	filtered := []CellInfo{}
	for _, info := range summary {
		if ofType != nil && !ofType[info.Index] {
			continue
		}
		if f.tag != nil && (info.Tag == "" || !f.tag.Match(info.Tag)) {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}
