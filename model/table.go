package model

import "fmt"

// Table is a dense grid of cells. Every (row, col) pair has a cell; spans
// are visual only and never change the grid shape.
type Table struct {
	Rows [][]TableCell
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// NewTable creates a table of the given dimensions with every cell holding
// a single empty paragraph, which is the minimum valid cell content.
func NewTable(rows, cols int) *Table {
	table := &Table{Rows: make([][]TableCell, rows)}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]TableCell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = TableCell{
				Row:     i,
				Col:     j,
				RowSpan: 1,
				ColSpan: 1,
				Content: []Element{&Paragraph{}},
			}
		}
	}
	return table
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the number of columns in the first row.
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed), or nil
// if out of bounds.
func (t *Table) GetCell(row, col int) *TableCell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetCell sets the cell at the given position.
func (t *Table) SetCell(row, col int, cell TableCell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("model: row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("model: col index %d out of bounds", col)
	}
	cell.Row, cell.Col = row, col
	t.Rows[row][col] = cell
	return nil
}

// Length returns the table's length in UTF-16 units: a start marker, per
// row a row marker plus per cell a cell marker and the cell content, and a
// trailing end marker.
func (t *Table) Length() int {
	n := 1 // table start marker
	for _, row := range t.Rows {
		n++ // row marker
		for i := range row {
			n++ // cell marker
			n += row[i].ContentLength()
		}
	}
	n++ // table end marker
	return n
}

// CellRange locates one cell's content within a segment: ContentStart is
// the absolute index of the first unit of cell content, ContentEnd the
// index just past the content's final structural newline.
type CellRange struct {
	Cell         *TableCell
	ContentStart int
	ContentEnd   int
}

// CellRanges returns the absolute content range of every cell in row-major
// order, given the table's own absolute start index.
func (t *Table) CellRanges(tableStart int) []CellRange {
	ranges := make([]CellRange, 0, t.RowCount()*t.ColCount())
	idx := tableStart + 1 // skip table start marker
	for i := range t.Rows {
		idx++ // row marker
		for j := range t.Rows[i] {
			idx++ // cell marker
			cell := &t.Rows[i][j]
			n := cell.ContentLength()
			ranges = append(ranges, CellRange{
				Cell:         cell,
				ContentStart: idx,
				ContentEnd:   idx + n,
			})
			idx += n
		}
	}
	return ranges
}

// TableCell is one grid position. Content is ordered and holds at least one
// paragraph in any valid cell.
type TableCell struct {
	Row, Col int
	Content  []Element
	// RowSpan/ColSpan are visual only; a spanned-over position still has
	// its own cell in the dense grid.
	RowSpan, ColSpan int
	// StyleClass is an optional reference into a document style table.
	StyleClass string
}

// ContentLength returns the summed length of the cell's content elements.
func (c *TableCell) ContentLength() int {
	n := 0
	for _, el := range c.Content {
		n += el.Length()
	}
	return n
}
