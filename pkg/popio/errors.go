package popio

import "fmt"

// FormatError reports content that cannot be interpreted: an identifier
// missing from the identifier map, a malformed numeric value or a malformed
// line. Line is 1-based and zero when the error is not tied to a line.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// StructuralError reports section markers in an impossible order.
type StructuralError struct {
	Line int
	Msg  string
}

func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func formatErrorf(line int, format string, args ...any) error {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func structuralErrorf(line int, format string, args ...any) error {
	return &StructuralError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
