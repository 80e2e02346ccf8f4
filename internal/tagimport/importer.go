package tagimport

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"assetconsole/pkg/auditlog"
	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/metadata"
	"assetconsole/pkg/models"

	"go.uber.org/zap"
)

const (
	maxRFIDLength  = 24
	uploadFilename = "rfid-import.xlsx"
)

type Backend interface {
	ListTags(ctx context.Context) (models.TagHistory, error)
	BulkImportTags(ctx context.Context, filename string, file io.Reader) (*models.ImportResult, error)
}

type AuditLogger interface {
	Log(action string, operator string, data map[string]interface{}, item auditlog.Auditable)
}

type Rejection struct {
	Line         int    `json:"line"`
	SerialNumber string `json:"serialNo"`
	Reason       string `json:"reason"`
}

type Report struct {
	Imported int         `json:"imported"`
	Rejected []Rejection `json:"rejected"`
	Message  string      `json:"message,omitempty"`
}

type Importer struct {
	backend  Backend
	auditLog AuditLogger
	logger   *zap.Logger
}

func NewImporter(backend Backend, auditLog AuditLogger, logger *zap.Logger) *Importer {
	return &Importer{backend: backend, auditLog: auditLog, logger: logger}
}

// Import checks every row against the freshly fetched tag history and the
// other rows, then uploads the accepted rows as one normalised workbook.
// Nothing is uploaded when no row is accepted.
func (i *Importer) Import(ctx context.Context, operator string, values [][]string) (*Report, error) {
	rows, err := ParseRows(values)
	if err != nil {
		return nil, err
	}

	history, err := i.backend.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	accepted, rejected := screen(rows, history)
	report := &Report{Rejected: rejected}

	if len(accepted) == 0 {
		return report, custom_error.NewValidationError("file", "no importable rows")
	}

	workbook, err := buildWorkbook(accepted)
	if err != nil {
		return report, fmt.Errorf("build import workbook: %w", err)
	}

	result, err := i.backend.BulkImportTags(ctx, uploadFilename, workbook)
	if err != nil {
		return report, err
	}

	report.Imported = len(accepted)
	report.Message = result.Message

	i.logger.Info("tag import uploaded",
		zap.String("operator", operator),
		zap.Int("imported", report.Imported),
		zap.Int("rejected", len(report.Rejected)),
	)

	go func(rows []Row) {
		for idx := range rows {
			i.auditLog.Log(auditlog.ActionImport, operator, map[string]interface{}{
				"line":      rows[idx].Line,
				"serial_no": rows[idx].SerialNumber,
				"msg":       "Tag imported from spreadsheet",
			}, &rows[idx])
		}
	}(accepted)

	return report, nil
}

// screen fills missing tag codes and drops rows that would duplicate a serial
// or carry a tag code that does not decode to the row's serial. Serials are
// compared by prefix and numeric value, so SYS-LAP-1 duplicates SYS-LAP-0001.
func screen(rows []Row, history models.TagHistory) ([]Row, []Rejection) {
	existing := make(map[string]struct{}, len(history))
	for _, serial := range history.Serials() {
		existing[metadata.SerialKey(serial)] = struct{}{}
	}

	seen := make(map[string]int)
	accepted := make([]Row, 0, len(rows))
	rejected := make([]Rejection, 0)

	reject := func(row Row, reason string) {
		rejected = append(rejected, Rejection{Line: row.Line, SerialNumber: row.SerialNumber, Reason: reason})
	}

	for _, row := range rows {
		switch {
		case row.AssetName == "":
			reject(row, "AssetName is required")
			continue
		case row.SerialNumber == "":
			reject(row, "SerialNo is required")
			continue
		case utf8.RuneCountInString(row.RFIDValue) > maxRFIDLength:
			reject(row, fmt.Sprintf("RFIDNo must be at most %d characters", maxRFIDLength))
			continue
		}

		key := metadata.SerialKey(row.SerialNumber)
		if _, ok := existing[key]; ok {
			reject(row, "serial already bound")
			continue
		}
		if line, ok := seen[key]; ok {
			reject(row, fmt.Sprintf("duplicate of line %d", line))
			continue
		}

		if row.TagCode == "" {
			row.TagCode = metadata.EncodeTagCode(row.SerialNumber)
		} else if ok, err := metadata.VerifyTagCode(row.TagCode, row.SerialNumber); err != nil || !ok {
			reject(row, "QRCode does not match SerialNo")
			continue
		}

		seen[key] = row.Line
		accepted = append(accepted, row)
	}

	return accepted, rejected
}
