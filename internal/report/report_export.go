package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	reporterrors "go-absensi/internal/report/errors"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Laporan"

// Encode mengubah Table menjadi file siap unduh. Table kosong ditolak.
func Encode(t Table, format Format, basename string) (ExportFile, error) {
	if t.Empty() {
		return ExportFile{}, reporterrors.ErrNoDataToExport
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = encodeCSV(t)
	case FormatPDF:
		data, err = encodePDF(t)
	case FormatXLSX:
		data, err = encodeXLSX(t)
	default:
		return ExportFile{}, reporterrors.ErrInvalidFormat
	}
	if err != nil {
		return ExportFile{}, err
	}

	return ExportFile{
		Filename:    basename + "." + string(format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func encodeCSV(t Table) ([]byte, error) {
	headers, rows := t.CSVHeaders, t.CSVRows
	if len(headers) == 0 {
		headers = t.Headers
		rows = make([][]string, len(t.Rows))
		for i, r := range t.Rows {
			rows[i] = make([]string, len(r))
			for j, v := range r {
				rows[i][j] = fmt.Sprint(v)
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(xlsxSheet, "A1", t.Title); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(xlsxSheet, "A2", t.Subtitle); err != nil {
		return nil, err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}

	// baris 3 kosong, header tabel di baris 4
	const headerRow = 4
	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(t.Headers), headerRow)
	if err := f.SetSheetRow(xlsxSheet, first, &header); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2980B9"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSheet, first, last, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		values := row
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(t.Headers))
	if err := f.SetColWidth(xlsxSheet, "A", lastCol, 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
