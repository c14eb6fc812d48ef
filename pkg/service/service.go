package service

import (
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/nbread/pkg/models"
	"github.com/mattsolo1/nbread/pkg/search"
)

// Service answers read-only queries over one loaded notebook.
// The notebook is never modified, so every query is repeatable.
type Service struct {
	notebook *models.Notebook
	logger   *logrus.Logger
}

// New creates a service for a loaded notebook. A nil logger discards output.
func New(nb *models.Notebook, logger *logrus.Logger) *Service {
	if nb == nil {
		nb = &models.Notebook{Cells: []models.Cell{}}
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &Service{notebook: nb, logger: logger}
}

// Open loads the notebook at path and wraps it in a Service.
func Open(path string, logger *logrus.Logger) (*Service, error) {
	nb, err := Load(path)
	if err != nil {
		return nil, err
	}
	svc := New(nb, logger)
	svc.logger.WithFields(logrus.Fields{
		"path":  path,
		"cells": len(nb.Cells),
	}).Debug("loaded notebook")
	return svc, nil
}

// Notebook returns the underlying document.
func (s *Service) Notebook() *models.Notebook {
	return s.notebook
}

// Len returns the number of cells.
func (s *Service) Len() int {
	return len(s.notebook.Cells)
}

// Cell returns the cell at index, or nil when index is out of range.
func (s *Service) Cell(index int) *models.Cell {
	if index < 0 || index >= len(s.notebook.Cells) {
		return nil
	}
	return &s.notebook.Cells[index]
}

// CellsByType returns every cell whose cell_type equals cellType, in order.
func (s *Service) CellsByType(cellType string) []*models.Cell {
	var cells []*models.Cell
	for i := range s.notebook.Cells {
		if s.notebook.Cells[i].CellType == cellType {
			cells = append(cells, &s.notebook.Cells[i])
		}
	}
	return cells
}

func (s *Service) indexOf(cell *models.Cell) int {
	for i := range s.notebook.Cells {
		if &s.notebook.Cells[i] == cell {
			return i
		}
	}
	return -1
}

// SearchCells runs a regular expression search over every cell source.
func (s *Service) SearchCells(pattern string, opts ...search.Option) ([]search.Result, error) {
	results, err := search.Cells(s.notebook.Cells, pattern, opts...)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"pattern": pattern,
		"results": len(results),
	}).Debug("searched cells")
	return results, nil
}
