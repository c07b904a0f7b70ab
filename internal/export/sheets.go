// Package export appends activity events to a Google Sheets spreadsheet.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/PatricioAlv/adminGastos/internal/amqp"
	"github.com/PatricioAlv/adminGastos/internal/config"
)

// RowWriter is what the worker appends through. The Google client and the
// in-memory test double both implement it.
type RowWriter interface {
	AppendActivity(ctx context.Context, event *amqp.ActivityEvent) (string, error)
}

type SheetsClient struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ RowWriter = (*SheetsClient)(nil)

// NewSheetsClient builds a client authenticated with service account
// credentials from the configuration.
func NewSheetsClient(ctx context.Context, cfg *config.Config) (*SheetsClient, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsClient{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

func loadCredentials(cfg *config.Config) ([]byte, error) {
	if json := strings.TrimSpace(cfg.GoogleServiceAccountJSON); json != "" {
		return []byte(json), nil
	}
	if file := strings.TrimSpace(cfg.GoogleServiceAccountFile); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("missing service account credentials")
}

// AppendActivity writes one event as a spreadsheet row and returns the
// range reference of the written row.
func (c *SheetsClient) AppendActivity(ctx context.Context, event *amqp.ActivityEvent) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	// Find the next empty row from the current sheet height.
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", c.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:H%d", c.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{{
		event.Timestamp.Format("2006-01-02 15:04:05"),
		event.Kind,
		event.UserID,
		event.Description,
		event.Category,
		event.Amount,
		event.Month,
		event.Year,
	}}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write row to sheet %s: %w", c.sheetName, err)
	}

	return dataRange, nil
}
