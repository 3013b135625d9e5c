package datatable

import "fmt"

// Align is the horizontal alignment of a column's cells.
type Align int

// Column alignments.
const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// Column describes one table column for records of type T.
//
// A cell value comes from Render when it is set. Otherwise Field supplies
// the raw value, which is coerced with fmt.Sprint. A column with neither
// renders empty cells.
type Column[T any] struct {
	Key    string         // Unique within a table.
	Header string         // Header label.
	Field  func(T) any    // Raw value accessor.
	Render func(T) string // Custom cell formatter; wins over Field.
	Align  Align
}

// FieldColumn returns a column that displays the raw value returned by field.
func FieldColumn[T any](key, header string, field func(T) any) Column[T] {
	return Column[T]{Key: key, Header: header, Field: field}
}

// RenderColumn returns a column whose cells are produced by render.
func RenderColumn[T any](key, header string, render func(T) string) Column[T] {
	return Column[T]{Key: key, Header: header, Render: render}
}

// RightAligned returns a copy of the column aligned to the right.
func (c Column[T]) RightAligned() Column[T] {
	c.Align = AlignRight
	return c
}

// Cell resolves the display value of the column for record.
func (c Column[T]) Cell(record T) string {
	if c.Render != nil {
		return c.Render(record)
	}
	if c.Field != nil {
		v := c.Field(record)
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
	return ""
}
