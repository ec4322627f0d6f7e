package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"
)

// Format is a supported file encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

const xlsxSheetName = "Tasks"

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported spreadsheet extension %q (want .xlsx, .csv or .json)", ext)
	}
}

// ReadFile decodes the records of the file at path.
func ReadFile(path string) ([][]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// WriteFile encodes records into a new file at path.
func WriteFile(path string, records [][]string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, format, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes records in the given format. The first record is the header.
func Read(r io.Reader, format Format) ([][]string, error) {
	switch format {
	case FormatXLSX:
		return readXLSX(r)
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		return readJSON(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Write encodes records in the given format. The first record is the header.
func Write(w io.Writer, format Format, records [][]string) error {
	switch format {
	case FormatXLSX:
		return writeXLSX(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// readXLSX reads the first worksheet. Cells come back raw so date cells
// arrive as serial numbers.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func writeXLSX(w io.Writer, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	progressCol := -1
	if len(records) > 0 {
		progressCol = columnIndex(records[0])[ColProgress]
	}
	for i, rec := range records {
		cells := make([]interface{}, len(rec))
		for j, v := range rec {
			cells[j] = v
			if i > 0 && j == progressCol {
				if n, err := strconv.Atoi(v); err == nil {
					cells[j] = n
				}
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheetName, axis, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return records, nil
}

func writeCSV(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// jsonRow is the export shape of one record.
type jsonRow struct {
	Type         string `json:"Type"`
	Title        string `json:"Title"`
	StartDate    string `json:"Start Date"`
	EndDate      string `json:"End Date"`
	Progress     int    `json:"Progress (%)"`
	Dependencies string `json:"Dependencies"`
}

// readJSON accepts an array of objects keyed by column header. Numbers are
// kept in their shortest textual form so serial dates survive.
func readJSON(r io.Reader) ([][]string, error) {
	var objects []map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	header := append([]string(nil), Header...)
	records := [][]string{header}
	for _, obj := range objects {
		byKey := make(map[string]any, len(obj))
		for k, v := range obj {
			byKey[headerKey(k)] = v
		}
		rec := make([]string, len(header))
		for i, col := range header {
			rec[i] = jsonCell(byKey[headerKey(col)])
		}
		records = append(records, rec)
	}
	return records, nil
}

func jsonCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, p := range x {
			parts = append(parts, jsonCell(p))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}

func writeJSON(w io.Writer, records [][]string) error {
	rows := make([]jsonRow, 0, len(records))
	if len(records) > 0 {
		idx := columnIndex(records[0])
		for _, rec := range records[1:] {
			get := func(col string) string {
				if i := idx[col]; i >= 0 && i < len(rec) {
					return rec[i]
				}
				return ""
			}
			progress, _ := strconv.Atoi(get(ColProgress))
			rows = append(rows, jsonRow{
				Type:         get(ColType),
				Title:        get(ColTitle),
				StartDate:    get(ColStartDate),
				EndDate:      get(ColEndDate),
				Progress:     progress,
				Dependencies: get(ColDependencies),
			})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
