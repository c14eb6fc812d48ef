package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TextKind tells how a Text value was stored in the document.
type TextKind int

const (
	// TextAbsent is the zero value: the field was missing or null.
	TextAbsent TextKind = iota
	// TextLines is a JSON array of line strings, each usually ending in "\n".
	TextLines
	// TextJoined is a single JSON string.
	TextJoined
)

// Text is a multiline notebook field (cell source, stream text, text/plain data).
// nbformat allows both a list of lines and a single string, and the two must
// stay distinguishable because truncation only applies to the list form.
type Text struct {
	Kind   TextKind
	Lines  []string
	Joined string
}

// LinesText builds a list-form Text.
func LinesText(lines ...string) Text {
	return Text{Kind: TextLines, Lines: lines}
}

// JoinedText builds a single-string Text.
func JoinedText(s string) Text {
	return Text{Kind: TextJoined, Joined: s}
}

// UnmarshalJSON accepts null, a string, or an array of strings.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = Text{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = JoinedText(s)
		return nil
	case data[0] == '[':
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return fmt.Errorf("text lines: %w", err)
		}
		*t = LinesText(lines...)
		return nil
	default:
		return fmt.Errorf("text must be a string or an array of strings, got %s", truncateForError(data))
	}
}

// MarshalJSON writes the value back in the form it was read.
func (t Text) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case TextLines:
		if t.Lines == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.Lines)
	case TextJoined:
		return json.Marshal(t.Joined)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML renders the canonical string so YAML output stays readable.
func (t Text) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// String concatenates the value into the full text.
func (t Text) String() string {
	switch t.Kind {
	case TextLines:
		return strings.Join(t.Lines, "")
	case TextJoined:
		return t.Joined
	default:
		return ""
	}
}

// IsEmpty reports whether the value carries no text at all.
func (t Text) IsEmpty() bool {
	switch t.Kind {
	case TextLines:
		return len(t.Lines) == 0
	case TextJoined:
		return t.Joined == ""
	default:
		return true
	}
}

// SplitLines returns the value as lines. List-form text is returned as stored;
// a single string is split after each "\n" so both forms look the same.
func (t Text) SplitLines() []string {
	switch t.Kind {
	case TextLines:
		return t.Lines
	case TextJoined:
		if t.Joined == "" {
			return nil
		}
		return strings.SplitAfter(strings.TrimSuffix(t.Joined, "\n"), "\n")
	default:
		return nil
	}
}

// LineCount is len(SplitLines()).
func (t Text) LineCount() int {
	return len(t.SplitLines())
}

// Head returns the first n lines of list-form text, concatenated.
// A single string is never truncated, and n <= 0 means no limit.
func (t Text) Head(n int) string {
	if t.Kind != TextLines || n <= 0 || n >= len(t.Lines) {
		return t.String()
	}
	return strings.Join(t.Lines[:n], "")
}

func truncateForError(data []byte) string {
	const max = 32
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
