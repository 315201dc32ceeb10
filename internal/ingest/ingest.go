// Package ingest parses an uploaded workbook into product rows.
package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"autoseo/pkg/models"
)

// ErrEmptySheet is returned when the workbook parses but contains no product
// rows. The user must re-upload; no run is started.
var ErrEmptySheet = errors.New("spreadsheet contains no product rows")

// ReadWorkbook reads the first sheet of an xlsx workbook: the first row is
// the header row, every following non-empty row becomes one ProductInput.
// Row order matches sheet order and all cells are kept as strings. Returns
// the headers so downstream exports can preserve column order.
func ReadWorkbook(r io.Reader) ([]string, []models.ProductInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrEmptySheet
	}

	// A blank header cell drops its column only; the columns after it keep
	// their sheet positions, so data never shifts under a later header.
	headers := make([]string, 0, len(rows[0]))
	columns := make([]int, 0, len(rows[0]))
	for i, h := range rows[0] {
		if h != "" {
			headers = append(headers, h)
			columns = append(columns, i)
		}
	}
	if len(headers) == 0 {
		return nil, nil, ErrEmptySheet
	}

	products := make([]models.ProductInput, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		p := make(models.ProductInput, len(headers))
		empty := true
		for j, h := range headers {
			col := columns[j]
			if col < len(cells) && cells[col] != "" {
				p[h] = cells[col]
				empty = false
			}
		}
		if empty {
			continue
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, nil, ErrEmptySheet
	}

	return headers, products, nil
}
