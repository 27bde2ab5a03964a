package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Column is a single spreadsheet column letter (A-Z)
type Column string

// DefaultColumn is the attendance column used when nothing is configured
const DefaultColumn Column = "K"

// ErrInvalidColumn is returned for anything other than one letter A-Z
var ErrInvalidColumn = goerr.New("column must be a single letter A-Z")

// NormalizeColumn trims and uppercases user input
func NormalizeColumn(s string) Column {
	return Column(strings.ToUpper(strings.TrimSpace(s)))
}

// IsSet reports whether a column has been entered
func (c Column) IsSet() bool {
	return c != ""
}

// Validate checks that the column is one letter A-Z
func (c Column) Validate() error {
	if len(c) != 1 || c[0] < 'A' || c[0] > 'Z' {
		return goerr.Wrap(ErrInvalidColumn, "invalid column", goerr.V("column", string(c)))
	}
	return nil
}

// Index returns the zero based column index
func (c Column) Index() (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return int(c[0] - 'A'), nil
}

// ColumnAt returns the letter for a zero based index
func ColumnAt(index int) (Column, error) {
	if index < 0 || index > 25 {
		return "", goerr.Wrap(ErrInvalidColumn, "column index out of range", goerr.V("index", index))
	}
	return Column(rune('A' + index)), nil
}

// Next returns the column after c, wrapping from end back to start.
// An invalid column, start or end leaves c unchanged.
func (c Column) Next(start, end Column) Column {
	cur, err := c.Index()
	if err != nil {
		return c
	}
	s, err := start.Index()
	if err != nil {
		return c
	}
	e, err := end.Index()
	if err != nil {
		return c
	}

	next := cur + 1
	if next > e {
		next = s
	}
	col, err := ColumnAt(next)
	if err != nil {
		return c
	}
	return col
}

// String returns the string representation of the column
func (c Column) String() string {
	return string(c)
}
