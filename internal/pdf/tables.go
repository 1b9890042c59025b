package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// defaultCellGap is the horizontal whitespace, in points, treated as a
	// column boundary between two text runs on the same line.
	defaultCellGap = 12.0

	// defaultWordGap is the smaller gap treated as a space within a cell.
	defaultWordGap = 2.0
)

// TableExtractor pulls per-page grids of raw text cells out of a report PDF.
// It is deliberately thin: positioned text runs on one line are grouped into
// cells by horizontal gap, nothing more. Cells may be empty, may carry inline
// annotations, and rows of the same logical record may surface as separate
// grid rows; all of that is the pipeline's problem, not the extractor's.
type TableExtractor struct {
	maxFileSize int64
	cellGap     float64
	wordGap     float64
}

// NewTableExtractor creates a table extractor with the specified size limit.
func NewTableExtractor(maxFileSize int64) *TableExtractor {
	return &TableExtractor{
		maxFileSize: maxFileSize,
		cellGap:     defaultCellGap,
		wordGap:     defaultWordGap,
	}
}

// ExtractPages returns one grid per page: rows of cell text in top-to-bottom,
// left-to-right order. Pages that fail text extraction are skipped; the
// error return is reserved for files that cannot be opened at all.
func (e *TableExtractor) ExtractPages(filePath string) ([][][]string, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.Size() > e.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), e.maxFileSize)
	}

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages [][][]string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		grid, err := e.extractPageGrid(page)
		if err != nil {
			// One unreadable page does not spoil the report.
			continue
		}
		if len(grid) > 0 {
			pages = append(pages, grid)
		}
	}

	return pages, nil
}

// extractPageGrid converts one page's positioned text into a row/cell grid.
func (e *TableExtractor) extractPageGrid(page pdf.Page) ([][]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to read page text: %w", err)
	}

	// Top of page first. Position is the row's Y coordinate.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := e.groupRowCells(row.Content)
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	}
	return grid, nil
}

// groupRowCells splits one line's text runs into cells at large horizontal
// gaps, joining runs separated by word-sized gaps with a space.
func (e *TableExtractor) groupRowCells(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var (
		cells   []string
		current strings.Builder
		prevEnd float64
	)

	flush := func() {
		cells = append(cells, strings.TrimSpace(current.String()))
		current.Reset()
	}

	for i, t := range sorted {
		if i > 0 {
			gap := t.X - prevEnd
			switch {
			case gap > e.cellGap:
				flush()
			case gap > e.wordGap:
				current.WriteByte(' ')
			}
		}
		current.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	flush()

	return cells
}
