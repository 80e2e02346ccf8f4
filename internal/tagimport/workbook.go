package tagimport

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName      = "RFID Import"
	TemplateName   = "RFID_Import_Template.xlsx"
	columnWidth    = 20
	defaultSheet   = "Sheet1"
	lastHeaderCell = "D"
)

var Headers = []string{"AssetName", "SerialNo", "RFIDNo", "QRCode"}

// BuildTemplate returns an empty import workbook with the header row only.
func BuildTemplate() (*bytes.Buffer, error) {
	return buildWorkbook(nil)
}

// ReadWorkbook returns the rows of the import sheet, or of the first sheet
// when the workbook was renamed.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheet := SheetName
	if idx, err := f.GetSheetIndex(SheetName); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}

	return rows, nil
}

func buildWorkbook(rows []Row) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", lastHeaderCell, columnWidth); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{row.AssetName, row.SerialNumber, row.RFIDValue, row.TagCode}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
