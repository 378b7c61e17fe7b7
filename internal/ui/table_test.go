package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"task-1a2b3c4d", "Design schema", "pending"},
			{"task-9f8e7d6c", "Create API route handlers", "blocked"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 13, widths[0]) // full task id
	assert.Equal(t, 25, widths[1]) // longest title
	assert.Equal(t, 7, widths[2])  // "pending"
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Goal"},
		Rows:     [][]string{{"a", "A very long goal line that should be capped for display"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"1", "Design schema"},
			{"2", "Write handlers"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Design schema")
	assert.Contains(t, output, "Write handlers")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}

	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This cell is far too long for its column"}},
		MaxWidth: 10,
	}

	assert.Contains(t, table.Render(), "…")
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"1", "Design schema"}, // no status cell
		},
	}

	output := table.Render()

	assert.Contains(t, output, "Design schema")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 3, len(lines)) // header, separator, one row
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"fits", 10, "fits"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is t…"},
		{"xy", 1, "…"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, clip(tc.input, tc.width))
	}
}
