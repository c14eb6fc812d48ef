package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/nbread/pkg/models"
	"github.com/mattsolo1/nbread/pkg/search"
	"github.com/mattsolo1/nbread/pkg/service"
)

// Printer writes query results as plain text. Markers are coloured only
// when the writer is a terminal.
type Printer struct {
	w       io.Writer
	tag     lipgloss.Style
	errMark lipgloss.Style
	heading lipgloss.Style
	opts    []FormatOption
}

// NewPrinter creates a printer for w. opts are applied to every formatted cell.
func NewPrinter(w io.Writer, opts ...FormatOption) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		tag:     r.NewStyle().Foreground(lipgloss.Color("6")),
		errMark: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		heading: r.NewStyle().Bold(true),
		opts:    opts,
	}
}

// Summary prints one two-line entry per summary item. The header always
// counts the whole notebook, even when summary was filtered.
func (p *Printer) Summary(svc *service.Service, summary []service.CellInfo) {
	code := len(svc.CellsByType(models.CellTypeCode))
	markdown := len(svc.CellsByType(models.CellTypeMarkdown))

	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render(fmt.Sprintf("Notebook has %d cells (%d code, %d markdown):", svc.Len(), code, markdown)))
	if len(summary) != svc.Len() {
		fmt.Fprintf(p.w, "Showing %d matching cells\n", len(summary))
	}
	fmt.Fprintln(p.w)

	for _, info := range summary {
		var markers strings.Builder
		if info.Tag != "" {
			markers.WriteString(" " + p.tag.Render("["+info.Tag+"]"))
		}
		if info.HasError {
			markers.WriteString(" " + p.errMark.Render("[ERROR]"))
		}
		fmt.Fprintf(p.w, "Cell %3d: %-8s (%4d lines)%s\n", info.Index, info.Type, info.Lines, markers.String())
		fmt.Fprintf(p.w, "         %s\n", info.FirstLine)
	}
}

// Cell prints one formatted cell.
func (p *Printer) Cell(svc *service.Service, index int, includeOutput bool) {
	fmt.Fprintln(p.w, FormatCell(svc, index, includeOutput, p.opts...))
}

// InitCells prints the initialization cells, followed by each cell's source
// when showCells is set.
func (p *Printer) InitCells(svc *service.Service, cells []service.InitCell, showCells bool) {
	fmt.Fprintf(p.w, "\n%s\n\n", p.heading.Render(fmt.Sprintf("Found %d initialization cells:", len(cells))))
	for _, c := range cells {
		fmt.Fprintf(p.w, "Cell %d: %s\n", c.Index, p.tag.Render(c.Type))
		if showCells {
			p.Cell(svc, c.Index, false)
		}
	}
}

// ErrorCells prints the cells with errors, followed by each full cell when
// showCells is set.
func (p *Printer) ErrorCells(svc *service.Service, cells []service.ErrorCell, showCells bool) {
	if len(cells) == 0 {
		fmt.Fprintln(p.w, "No error cells found")
		return
	}

	fmt.Fprintf(p.w, "\n%s\n\n", p.heading.Render(fmt.Sprintf("Found %d cells with errors:", len(cells))))
	for _, c := range cells {
		fmt.Fprintf(p.w, "\nCell %d:\n", c.Index)
		fmt.Fprintf(p.w, "  Error Type: %s\n", p.errMark.Render(c.Error.Type))
		fmt.Fprintf(p.w, "  Error Value: %s\n", c.Error.Value)
		if showCells {
			p.Cell(svc, c.Index, true)
		}
	}
}

// SearchResults prints the cells that matched a search.
func (p *Printer) SearchResults(results []search.Result) {
	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render(fmt.Sprintf("Found pattern in %d cells:", len(results))))
	for _, r := range results {
		fmt.Fprintf(p.w, "Cell %d (%s): %s\n", r.Index, r.Type, formatMatches(r.Matches))
	}
}

func formatMatches(matches []string) string {
	quoted := make([]string, len(matches))
	for i, m := range matches {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
