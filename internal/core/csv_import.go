package core

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
)

// CSVRow is one parsed data row of an inventory import.
type CSVRow struct {
	TypeName string
	Count    int
}

// ParseInventoryCSV parses raw CSV content into inventory rows.
//
// The header row is required. Column names are matched case-insensitively
// after trimming: "type" or "typename" for the type column, "count" or
// "quantity" for the count column. A leading UTF-8 byte-order mark is
// tolerated. Rows with a blank type name are silently skipped; a row whose
// count does not parse as a non-negative integer fails the whole import,
// reported with the spreadsheet row number (data row i is "Row i+2" to
// account for the header line). Zero data rows is not an error.
func ParseInventoryCSV(content []byte) ([]CSVRow, error) {
	text := strings.TrimPrefix(string(content), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, Validationf("CSV file is empty")
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, Validationf("Invalid CSV: %v", err)
	}

	typeIdx, countIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "type", "typename":
			if typeIdx < 0 {
				typeIdx = i
			}
		case "count", "quantity":
			if countIdx < 0 {
				countIdx = i
			}
		}
	}
	if typeIdx < 0 || countIdx < 0 {
		return nil, Validationf("CSV must have columns for type (or typeName) and count (or quantity)")
	}

	var rows []CSVRow
	for rowNum := 0; ; rowNum++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Validationf("Invalid CSV: %v", err)
		}

		typeName := ""
		if typeIdx < len(record) {
			typeName = strings.TrimSpace(record[typeIdx])
		}
		if typeName == "" {
			continue
		}

		countRaw := ""
		if countIdx < len(record) {
			countRaw = strings.TrimSpace(record[countIdx])
		}
		count, err := strconv.Atoi(countRaw)
		if err != nil || count < 0 {
			return nil, Validationf("Row %d: count must be a non-negative integer", rowNum+2)
		}
		rows = append(rows, CSVRow{TypeName: typeName, Count: count})
	}
	return rows, nil
}

// MergeInventory merges CSV rows into the current projection. Counts are
// additive, never a replacement: importing the same file twice doubles the
// imported counts. Repeated rows for one type accumulate, and new types are
// appended in row order.
func MergeInventory(current []InventoryItem, rows []CSVRow) []InventoryItem {
	b := newInvBuilder(current)
	for _, row := range rows {
		b.add(row.TypeName, row.Count)
	}
	return b.items(nil)
}
