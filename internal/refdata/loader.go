// Package refdata loads the reference dataset of company-name-to-ticker rows
// used to build the symbol resolution index. The dataset is a CSV table with
// IssuerName and SecurityId columns, loaded once at startup from a local path
// or an s3:// location.
package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Row is a single reference dataset entry.
type Row struct {
	CompanyName string
	Ticker      string
}

// Load reads the reference dataset from a local path or an s3://bucket/key URL.
// Malformed rows are skipped; a missing or unreadable dataset is an error the
// caller is expected to degrade on (curated-only index), not crash.
func Load(ctx context.Context, location string, log zerolog.Logger) ([]Row, error) {
	log = log.With().Str("component", "refdata").Logger()

	var reader io.Reader
	if strings.HasPrefix(location, "s3://") {
		data, err := downloadS3(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to download reference dataset from %s: %w", location, err)
		}
		reader = strings.NewReader(string(data))
	} else {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open reference dataset %s: %w", location, err)
		}
		defer f.Close()
		reader = f
	}

	rows, skipped, err := parseCSV(reader)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("rows", len(rows)).
		Int("skipped", skipped).
		Str("location", location).
		Msg("Loaded reference dataset")

	return rows, nil
}

// parseCSV reads reference rows from CSV content.
// The header row locates the IssuerName and SecurityId columns
// (case-insensitive); rows missing either value are skipped.
func parseCSV(r io.Reader) ([]Row, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameCol, tickerCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "issuername", "issuer_name", "company_name", "name":
			if nameCol == -1 {
				nameCol = i
			}
		case "securityid", "security_id", "ticker", "symbol":
			if tickerCol == -1 {
				tickerCol = i
			}
		}
	}
	if nameCol == -1 || tickerCol == -1 {
		return nil, 0, fmt.Errorf("CSV header missing IssuerName/SecurityId columns: %v", header)
	}

	var rows []Row
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row - skip and continue
			skipped++
			continue
		}
		if nameCol >= len(record) || tickerCol >= len(record) {
			skipped++
			continue
		}

		name := strings.TrimSpace(record[nameCol])
		ticker := strings.TrimSpace(record[tickerCol])
		if name == "" || ticker == "" {
			skipped++
			continue
		}

		rows = append(rows, Row{CompanyName: name, Ticker: ticker})
	}

	return rows, skipped, nil
}
