package googlesheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Reader reads tagging rows from a Google spreadsheet with read-only scope.
type Reader struct {
	sheetsService *sheets.Service
	logger        *zap.Logger
}

// NewReader prefers inline JSON credentials and falls back to a credentials file.
func NewReader(ctx context.Context, credentialsJSON, credentialsFile string, logger *zap.Logger) (*Reader, error) {
	raw := []byte(credentialsJSON)
	if credentialsJSON == "" {
		logger.Info("using Google credentials file", zap.String("path", credentialsFile))
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("cannot read Google credentials file: %w", err)
		}
		raw = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, raw, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("cannot load Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("cannot create Google Sheets client: %w", err)
	}

	return NewReaderWithService(sheetsService, logger), nil
}

func NewReaderWithService(sheetsService *sheets.Service, logger *zap.Logger) *Reader {
	return &Reader{sheetsService: sheetsService, logger: logger}
}

// ReadRows returns the cell values of readRange as text. An empty range gives no rows.
func (r *Reader) ReadRows(ctx context.Context, spreadsheetID string, readRange string) ([][]string, error) {
	resp, err := r.sheetsService.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("cannot read spreadsheet: %w", err)
	}

	if len(resp.Values) == 0 {
		r.logger.Info("no data found in range", zap.String("range", readRange))
		return nil, nil
	}

	return ValuesToRows(resp.Values), nil
}

func ValuesToRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = strings.TrimSpace(toString(value))
		}
		rows = append(rows, cells)
	}
	return rows
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
