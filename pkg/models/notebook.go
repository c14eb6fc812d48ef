package models

import "encoding/json"

// Well-known cell types. The set is open; anything else passes through.
const (
	CellTypeCode     = "code"
	CellTypeMarkdown = "markdown"
	CellTypeRaw      = "raw"

	// CellTypeUnknown is reported for cells without a cell_type.
	CellTypeUnknown = "unknown"
)

// OutputTypeError marks an output produced by an uncaught exception.
const OutputTypeError = "error"

// MIMETextPlain is the data bundle entry used for plain-text rendering.
const MIMETextPlain = "text/plain"

// Notebook is a parsed notebook document
type Notebook struct {
	Cells         []Cell   `json:"cells" yaml:"cells"`
	Metadata      Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	NBFormat      int      `json:"nbformat,omitempty" yaml:"nbformat,omitempty"`
	NBFormatMinor int      `json:"nbformat_minor,omitempty" yaml:"nbformat_minor,omitempty"`
}

// Metadata holds the notebook-level metadata this tool reads
type Metadata struct {
	KernelSpec   *KernelSpec   `json:"kernelspec,omitempty" yaml:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty" yaml:"language_info,omitempty"`
}

// KernelSpec describes the kernel the notebook was written for
type KernelSpec struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
}

// LanguageInfo describes the kernel language
type LanguageInfo struct {
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
	FileExtension string `json:"file_extension,omitempty" yaml:"file_extension,omitempty"`
}

// Language returns the notebook's programming language, or "" if the
// metadata does not say.
func (nb *Notebook) Language() string {
	if li := nb.Metadata.LanguageInfo; li != nil && li.Name != "" {
		return li.Name
	}
	if ks := nb.Metadata.KernelSpec; ks != nil && ks.Language != "" {
		return ks.Language
	}
	return ""
}

// Cell is one unit of a notebook. Its index is its position in Notebook.Cells.
type Cell struct {
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	CellType       string   `json:"cell_type" yaml:"cell_type"`
	Source         Text     `json:"source" yaml:"source"`
	ExecutionCount *int     `json:"execution_count,omitempty" yaml:"execution_count,omitempty"`
	Outputs        []Output `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Type returns the cell type, or CellTypeUnknown when it is missing.
func (c *Cell) Type() string {
	if c.CellType == "" {
		return CellTypeUnknown
	}
	return c.CellType
}

// IsCode reports whether the cell is a code cell.
func (c *Cell) IsCode() bool {
	return c.CellType == CellTypeCode
}

// Output is one recorded execution result of a code cell
type Output struct {
	OutputType string `json:"output_type" yaml:"output_type"`

	// stream outputs
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Text *Text  `json:"text,omitempty" yaml:"text,omitempty"`

	// execute_result / display_data
	Data map[string]json.RawMessage `json:"data,omitempty" yaml:"-"`

	// error outputs
	EName     string   `json:"ename,omitempty" yaml:"ename,omitempty"`
	EValue    string   `json:"evalue,omitempty" yaml:"evalue,omitempty"`
	Traceback []string `json:"traceback,omitempty" yaml:"traceback,omitempty"`
}

// IsError reports whether the output is a structural error record.
func (o *Output) IsError() bool {
	return o.OutputType == OutputTypeError
}

// HasText reports whether the output carries a text field.
func (o *Output) HasText() bool {
	return o.Text != nil
}

// TextString returns the output's text concatenated, or "" when absent.
func (o *Output) TextString() string {
	if o.Text == nil {
		return ""
	}
	return o.Text.String()
}

// ErrorName returns ename, defaulting to "Unknown".
func (o *Output) ErrorName() string {
	if o.EName == "" {
		return "Unknown"
	}
	return o.EName
}

// ErrorValue returns evalue, defaulting to "No error message".
func (o *Output) ErrorValue() string {
	if o.EValue == "" {
		return "No error message"
	}
	return o.EValue
}

// PlainText returns the data bundle's text/plain entry, if it has one.
func (o *Output) PlainText() (string, bool) {
	raw, ok := o.Data[MIMETextPlain]
	if !ok {
		return "", false
	}
	var t Text
	if err := json.Unmarshal(raw, &t); err != nil {
		return "", false
	}
	return t.String(), true
}
