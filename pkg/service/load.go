package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mattsolo1/nbread/pkg/models"
)

// NotFoundError is returned when the notebook path cannot be opened
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("notebook not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// MalformedDocumentError is returned when the notebook is not valid JSON
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("invalid notebook format: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Load reads and parses a notebook file. A UTF-8 or UTF-16 byte order mark
// is honoured; without one the file is read as UTF-8.
func Load(path string) (*models.Notebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return nil, fmt.Errorf("read notebook %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse decodes notebook JSON that has already been read. path is only used
// for error reporting.
func Parse(path string, data []byte) (*models.Notebook, error) {
	var nb models.Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, &MalformedDocumentError{Path: path, Err: err}
	}
	if nb.Cells == nil {
		nb.Cells = []models.Cell{}
	}
	return &nb, nil
}
