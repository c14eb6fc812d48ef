package display

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/nbread/pkg/models"
	"github.com/mattsolo1/nbread/pkg/service"
)

const dividerWidth = 60

var divider = strings.Repeat("=", dividerWidth)

type formatOptions struct {
	maxLines  int
	highlight bool
	style     string
}

// FormatOption configures FormatCell
type FormatOption func(*formatOptions)

// WithMaxLines limits source and output sections to n lines where the
// notebook stores them as line lists.
func WithMaxLines(n int) FormatOption {
	return func(o *formatOptions) {
		o.maxLines = n
	}
}

// WithHighlight colours the source section using the named chroma style.
func WithHighlight(style string) FormatOption {
	return func(o *formatOptions) {
		o.highlight = true
		o.style = style
	}
}

// FormatCell renders a cell with its source and, for code cells when
// includeOutput is set, its output.
func FormatCell(svc *service.Service, index int, includeOutput bool, opts ...FormatOption) string {
	o := &formatOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cell := svc.Cell(index)
	if cell == nil {
		return fmt.Sprintf("Cell %d not found", index)
	}

	lines := []string{
		"\n" + divider,
		fmt.Sprintf("CELL %d (%s)", index, cell.Type()),
		divider,
	}

	if source, _ := svc.CellSource(index, o.maxLines); source != "" {
		if o.highlight {
			source = highlightOrPlain(source, sourceLanguage(svc, cell), o.style)
		}
		lines = append(lines, "SOURCE:", source)
	}

	if includeOutput && cell.IsCode() {
		if output, _ := svc.CellOutput(index, o.maxLines); output != "" {
			lines = append(lines, "\nOUTPUT:", output)
		}
	}

	return strings.Join(lines, "\n")
}

func sourceLanguage(svc *service.Service, cell *models.Cell) string {
	if cell.CellType == models.CellTypeMarkdown {
		return "markdown"
	}
	return svc.Notebook().Language()
}
