// Package google mirrors entries to a Google Sheets spreadsheet used as an
// off-site backup of the ledger.
package google

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"heiyubudget/internal/core"
	"heiyubudget/internal/log"
)

// Config selects the target spreadsheet and the service-account
// credentials. Exactly one of CredentialsFile or CredentialsJSON must be
// set.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// Client appends entry rows to one sheet of a spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// New builds a sheets client authenticated as a service account.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if cfg.SheetName == "" {
		return nil, fmt.Errorf("sheet name is required")
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	default:
		return nil, fmt.Errorf("service account credentials are required")
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger.WithComponent(log.ComponentExport),
	}, nil
}

// AppendEntry writes one entry as a row at the bottom of the sheet. The row
// layout matches the CSV export: date, time, type, category, amount, notes,
// plus the ledger ID so rows can be traced back.
func (c *Client) AppendEntry(ctx context.Context, entry core.Entry) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			entry.CreatedAt.Format("2006-01-02"),
			entry.CreatedAt.Format("15:04:05"),
			string(entry.Type),
			entry.Category,
			entry.Amount,
			entry.Text,
			entry.ID,
		}},
	}

	resp, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append entry %d to sheet: %w", entry.ID, err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	c.logger.InfoContext(ctx, "entry mirrored to spreadsheet",
		log.FieldOperation, log.OpAppend,
		log.FieldEntryID, entry.ID,
		log.FieldBackupRef, ref)
	return nil
}
