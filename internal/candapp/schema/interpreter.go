// Package schema interprets uploaded field-definition workbooks and resolves
// submitted form values against them.
package schema

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// ErrNotTabular reports that an uploaded schema could not be read as tabular
// data at all. Fatal for the operation; no descriptors are produced.
var ErrNotTabular = errors.New("schema: upload is not readable as tabular data")

// Schema upload column headers.
const (
	colFieldType = "field_type"
	colLabel     = "label"
	colOptions   = "options"
	colDefault   = "default"
)

// dateLayouts accepted for date defaults, tried in order.
var dateLayouts = []string{
	entity.DateLayout,
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
}

// Parse reads a schema workbook and returns one resolved descriptor per data
// row, in row order. Row order defines the rendering order of the form.
func Parse(r io.Reader) ([]entity.FieldDescriptor, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTabular, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNotTabular
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTabular, err)
	}
	if len(rows) == 0 {
		return []entity.FieldDescriptor{}, nil
	}

	idx := headerIndex(rows[0])
	fields := make([]entity.FieldDescriptor, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fields = append(fields, resolveRow(
			cell(row, idx[colFieldType]),
			cell(row, idx[colLabel]),
			cell(row, idx[colOptions]),
			cell(row, idx[colDefault]),
			i,
		))
	}
	return fields, nil
}

func headerIndex(header []string) map[string]int {
	idx := map[string]int{colFieldType: -1, colLabel: -1, colOptions: -1, colDefault: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[key]; ok {
			idx[key] = i
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// resolveRow coerces one raw schema row into a typed descriptor, applying the
// documented fallback rules. Fallbacks are policy, not errors: an uploaded
// schema never fails row by row.
func resolveRow(rawKind, label, rawOptions, rawDefault string, rowIdx int) entity.FieldDescriptor {
	if label == "" {
		label = fmt.Sprintf("Campo_%d", rowIdx)
	}
	f := entity.FieldDescriptor{Name: label}

	switch strings.ToLower(rawKind) {
	case "number":
		f.Kind = entity.FieldNumber
		n, err := strconv.ParseFloat(rawDefault, 64)
		if err != nil {
			n = 0
		}
		f.Default = n
	case "checkbox", "boolean":
		f.Kind = entity.FieldBoolean
		f.Default = strings.EqualFold(rawDefault, "true")
	case "select":
		options := splitOptions(rawOptions)
		if len(options) == 0 {
			// A select without options has no legal value; the descriptor
			// degrades to text carrying the raw default.
			f.Kind = entity.FieldText
			f.Default = rawDefault
			break
		}
		f.Kind = entity.FieldSelect
		f.Options = options
		f.Default = options[0]
		for _, o := range options {
			if o == rawDefault {
				f.Default = rawDefault
				break
			}
		}
	case "date":
		f.Kind = entity.FieldDate
		f.Default = parseDate(rawDefault)
	default:
		// Unknown or empty field_type renders as a text input.
		f.Kind = entity.FieldText
		f.Default = rawDefault
	}
	return f
}

func splitOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			options = append(options, o)
		}
	}
	return options
}

func parseDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(entity.DateLayout)
		}
	}
	return entity.Today()
}
