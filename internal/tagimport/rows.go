package tagimport

import (
	"strings"

	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/metadata"
	"assetconsole/pkg/models"
)

// Row is one data line of an import sheet. Line is the 1-based sheet row.
type Row struct {
	Line         int    `json:"line"`
	AssetName    string `json:"assetName"`
	SerialNumber string `json:"serialNo"`
	RFIDValue    string `json:"rfidNo"`
	TagCode      string `json:"qrCode"`
}

func (r Row) Tag() models.Tag {
	return models.Tag{
		AssetName:      r.AssetName,
		SerialNumber:   r.SerialNumber,
		RFIDValue:      r.RFIDValue,
		TagCode:        r.TagCode,
		Status:         metadata.StatusConfirmed,
		AssetCondition: metadata.ConditionActive,
	}
}

func (r *Row) CreateLogView() models.AuditLog {
	tag := r.Tag()
	return tag.CreateLogView()
}

// ParseRows maps the header row by name and reads every non blank data row.
// AssetName and SerialNo columns are required, RFIDNo and QRCode are optional.
func ParseRows(values [][]string) ([]Row, error) {
	if len(values) == 0 {
		return nil, custom_error.NewValidationError("file", "sheet is empty")
	}

	columns := mapHeaders(values[0])
	for _, required := range []string{"AssetName", "SerialNo"} {
		if _, ok := columns[required]; !ok {
			return nil, custom_error.NewValidationError("file", "missing column "+required)
		}
	}

	rows := make([]Row, 0, len(values)-1)
	for i, cells := range values[1:] {
		row := Row{
			Line:         i + 2,
			AssetName:    cell(cells, columns, "AssetName"),
			SerialNumber: cell(cells, columns, "SerialNo"),
			RFIDValue:    cell(cells, columns, "RFIDNo"),
			TagCode:      cell(cells, columns, "QRCode"),
		}
		if row.AssetName == "" && row.SerialNumber == "" && row.RFIDValue == "" && row.TagCode == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func mapHeaders(headers []string) map[string]int {
	columns := make(map[string]int)
	for i, header := range headers {
		for _, known := range Headers {
			if strings.EqualFold(strings.ReplaceAll(strings.TrimSpace(header), " ", ""), known) {
				columns[known] = i
			}
		}
	}
	return columns
}

func cell(cells []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
