// Package excel reads guest-complaint workbooks in the HIEX export
// layout: header labels on sheet row 3, data rows from row 4 onward.
// Cell interpretation is delegated to the report package; this package
// only turns the sheet into raw rows keyed by literal header text.
package excel

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"guest-recovery-portal/internal/models"
	"guest-recovery-portal/internal/report"
)

const (
	headerRowIndex = 3 // 1-based sheet row carrying the column headers
	dataStartIndex = 4 // 1-based sheet row where data begins
)

// Parse reads an .xlsx workbook and extracts complaint records. Row-level
// failures become indexed messages in the returned error list; a workbook
// that yields no records at all carries a batch-level message on top.
func Parse(r io.Reader) ([]models.Complaint, []string) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, []string{fmt.Sprintf("Failed to parse Excel file: %v", err)}
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, []string{"No active sheet found in Excel file"}
	}

	// Raw values keep date and time cells as their underlying serial
	// numbers instead of display strings, which is what the temporal
	// normalizer expects.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, []string{fmt.Sprintf("Failed to read sheet %q: %v", sheet, err)}
	}

	var headers []string
	if len(rows) >= headerRowIndex {
		headers = rows[headerRowIndex-1]
	}

	var indexed []report.IndexedRow
	for i := dataStartIndex - 1; i < len(rows); i++ {
		raw := make(report.RawRow, len(headers))
		for col, cell := range rows[i] {
			if col >= len(headers) || headers[col] == "" {
				continue
			}
			raw[headers[col]] = cellValue(cell)
		}
		indexed = append(indexed, report.IndexedRow{Index: i + 1, Row: raw})
	}

	complaints, errs := report.BuildBatch(indexed)
	log.Debug().
		Str("sheet", sheet).
		Int("rows", len(indexed)).
		Int("records", len(complaints)).
		Int("errors", len(errs)).
		Msg("parsed workbook")

	return complaints, errs
}

// ParseBytes parses a workbook already held in memory, e.g. an upload body.
func ParseBytes(data []byte) ([]models.Complaint, []string) {
	return Parse(bytes.NewReader(data))
}

// cellValue coerces a raw cell string. Numeric text becomes float64 so
// date serials and day-fraction times reach the report package as numbers,
// mirroring how a native workbook reader would hand them over.
func cellValue(s string) any {
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
