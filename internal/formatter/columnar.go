package formatter

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/dtcols/pkg/column"
)

// TableOptions configures the column table.
type TableOptions struct {
	// NoColor disables color output
	NoColor bool

	// TotalWidth is the total available width. If 0, uses terminal width.
	TotalWidth int

	// RowNumberStyle controls how row numbers are displayed:
	//   "numbered" - 1, 2, 3 (default)
	//   "index"    - [0], [1], [2]
	//   "bullet"   - •
	//   "none"     - no row number column
	RowNumberStyle string

	// MaxColumnWidth caps every column. 0 = no cap.
	MaxColumnWidth int
}

var tableHeaders = []string{"NAME", "DATA", "TITLE", "OPTIONS"}

// ValidRowNumberStyles contains all valid row number styles.
var ValidRowNumberStyles = []string{"numbered", "index", "bullet", "none"}

// ValidateRowNumberStyle returns an error if the style is invalid.
func ValidateRowNumberStyle(style string) error {
	if style == "" {
		return nil
	}
	for _, valid := range ValidRowNumberStyles {
		if style == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid row number style %q: valid values are numbered, index, bullet, none", style)
}

// ColumnRows converts columns into NAME, DATA, TITLE, OPTIONS rows.
func ColumnRows(cols []*column.Column) [][]string {
	rows := make([][]string, len(cols))
	for i, c := range cols {
		attrs := c.Attributes()
		delete(attrs, column.KeyName)
		delete(attrs, column.KeyData)
		delete(attrs, column.KeyTitle)
		rows[i] = []string{c.Name, Stringify(c.Data), c.Title, attributeSummary(attrs)}
	}
	return rows
}

// RenderColumnTable renders columns as a table, one row per column in render
// order. Returns "" for an empty set.
func RenderColumnTable(cols []*column.Column, opts TableOptions) string {
	if len(cols) == 0 {
		return ""
	}
	rows := ColumnRows(cols)

	totalWidth := opts.TotalWidth
	if totalWidth <= 0 {
		totalWidth = getTerminalWidth()
	}

	style := opts.RowNumberStyle
	if style == "" {
		style = "numbered"
	}
	showRowNum := style != "none"
	rowNumWidth := 0
	if showRowNum {
		rowNumWidth = len(fmt.Sprintf("%d", len(rows))) + 2
		if style == "index" {
			rowNumWidth = len(fmt.Sprintf("[%d]", len(rows)-1)) + 1
		}
		if style == "bullet" {
			rowNumWidth = 3
		}
	}

	const sepWidth = 2
	availableWidth := totalWidth - rowNumWidth
	if showRowNum {
		availableWidth -= sepWidth
	}
	colWidths := calculateColumnWidths(tableHeaders, rows, availableWidth, opts.MaxColumnWidth)

	var b strings.Builder
	b.WriteString(renderHeader(tableHeaders, colWidths, sepWidth, rowNumWidth, showRowNum, opts.NoColor) + "\n")

	totalHeaderWidth := rowNumWidth
	if showRowNum {
		totalHeaderWidth += sepWidth
	}
	for i, w := range colWidths {
		totalHeaderWidth += w
		if i < len(colWidths)-1 {
			totalHeaderWidth += sepWidth
		}
	}
	separator := strings.Repeat("─", totalHeaderWidth)
	if !opts.NoColor {
		separator = separatorStyle.Render(separator)
	}
	b.WriteString(separator + "\n")

	for i, row := range rows {
		b.WriteString(renderDataRow(i, row, colWidths, sepWidth, rowNumWidth, style, opts.NoColor) + "\n")
	}
	return b.String()
}

// calculateColumnWidths sizes each column to its widest cell, caps at
// maxWidth, then shrinks proportionally when the table does not fit.
func calculateColumnWidths(headers []string, rows [][]string, availableWidth, maxWidth int) []int {
	const sepWidth = 2
	const minColWidth = 3
	numCols := len(headers)
	widths := make([]int, numCols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < numCols {
				if w := lipgloss.Width(val); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	if maxWidth > 0 {
		for i := range widths {
			if widths[i] > maxWidth {
				widths[i] = maxWidth
			}
		}
	}

	usable := availableWidth - (numCols-1)*sepWidth
	total := 0
	for _, w := range widths {
		total += w
	}
	if total <= usable || usable <= 0 {
		return widths
	}

	shrunk := make([]int, numCols)
	for i, w := range widths {
		nw := int(float64(w) / float64(total) * float64(usable))
		if nw < minColWidth {
			nw = minColWidth
		}
		shrunk[i] = nw
	}
	for {
		sum := 0
		maxIdx := 0
		for i, w := range shrunk {
			sum += w
			if w > shrunk[maxIdx] {
				maxIdx = i
			}
		}
		if sum <= usable || shrunk[maxIdx] <= minColWidth {
			break
		}
		shrunk[maxIdx]--
	}
	return shrunk
}

func renderHeader(headers []string, widths []int, sepWidth, rowNumWidth int, showRowNum, noColor bool) string {
	sep := strings.Repeat(" ", sepWidth)
	parts := make([]string, 0, len(headers)+1)
	if showRowNum {
		h := padRight("#", rowNumWidth)
		if !noColor {
			h = headerStyle.Render(h)
		}
		parts = append(parts, h)
	}
	for i, col := range headers {
		h := padRight(truncate(col, widths[i]), widths[i])
		if !noColor {
			h = headerStyle.Render(h)
		}
		parts = append(parts, h)
	}
	return strings.TrimRight(strings.Join(parts, sep), " ")
}

func renderDataRow(rowIndex int, values []string, widths []int, sepWidth, rowNumWidth int, rowNumStyle string, noColor bool) string {
	sep := strings.Repeat(" ", sepWidth)
	parts := make([]string, 0, len(values)+1)
	if rowNumStyle != "none" {
		var num string
		switch rowNumStyle {
		case "index":
			num = fmt.Sprintf("[%d]", rowIndex)
		case "bullet":
			num = "•"
		default:
			num = fmt.Sprintf("%d", rowIndex+1)
		}
		num = padRight(num, rowNumWidth)
		if !noColor {
			num = keyStyle.Render(num)
		}
		parts = append(parts, num)
	}
	for i, val := range values {
		if i >= len(widths) {
			break
		}
		cell := padRight(truncate(val, widths[i]), widths[i])
		if !noColor {
			if i == 0 {
				cell = keyStyle.Render(cell)
			} else {
				cell = valueStyle.Render(cell)
			}
		}
		parts = append(parts, cell)
	}
	return strings.TrimRight(strings.Join(parts, sep), " ")
}
