// Package importer loads bulk company data from CSV exports and JSON
// payloads into the record store.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/jonathan/company-scout/internal/record"
	"github.com/jonathan/company-scout/internal/schemas"
)

// Store is the write side of the record store.
type Store interface {
	UpsertMerge(ctx context.Context, rec *record.CompanyRecord) (*record.CompanyRecord, error)
}

// Summary reports what an import did.
type Summary struct {
	RowsRead        int `json:"rows_read"`
	RowsSkipped     int `json:"rows_skipped"`
	DomainsImported int `json:"domains_imported"`
}

// Importer merges bulk data into the record store. Rows for the same domain
// are aggregated before writing, so each import touches a domain once.
type Importer struct {
	store Store
}

// New creates an importer over the given store.
func New(store Store) *Importer {
	return &Importer{store: store}
}

// ImportJSON validates a JSON payload against the import schema, aggregates
// its rows by domain, and merges every domain into the store. A payload that
// fails validation imports nothing.
func (im *Importer) ImportJSON(ctx context.Context, payload []byte) (*Summary, error) {
	if err := schemas.ValidateBytes(schemas.ImportRecordsSchema, payload); err != nil {
		return nil, fmt.Errorf("import payload rejected: %w", err)
	}

	var rows []record.ImportRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode import payload: %w", err)
	}

	summary := &Summary{RowsRead: len(rows)}
	byDomain := record.AggregateByDomain(rows)
	if err := im.writeAll(ctx, byDomain, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// ImportJSONFile imports a JSON payload from disk.
func (im *Importer) ImportJSONFile(ctx context.Context, path string) (*Summary, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return im.ImportJSON(ctx, payload)
}

// ImportCSV reads a legacy CSV export (domain plus company name columns),
// aggregates rows by domain, and merges them into the store. Rows without a
// domain are counted as skipped, not fatal.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Summary, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	summary := &Summary{}
	byDomain := make(map[string]*record.CompanyRecord)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		summary.RowsRead++

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}

		rec, err := record.FromCSVRow(row)
		if err != nil {
			summary.RowsSkipped++
			log.Printf("[import] row %d skipped: %v", summary.RowsRead, err)
			continue
		}
		if existing, ok := byDomain[rec.Domain]; ok {
			if merged, err := existing.MergeWith(rec); err == nil {
				byDomain[rec.Domain] = merged
			}
		} else {
			byDomain[rec.Domain] = rec
		}
	}

	if err := im.writeAll(ctx, byDomain, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// ImportCSVFile imports a CSV export from disk.
func (im *Importer) ImportCSVFile(ctx context.Context, path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()
	return im.ImportCSV(ctx, f)
}

// writeAll upserts aggregated records in deterministic domain order.
func (im *Importer) writeAll(ctx context.Context, byDomain map[string]*record.CompanyRecord, summary *Summary) error {
	domains := make([]string, 0, len(byDomain))
	for domain := range byDomain {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	for _, domain := range domains {
		if _, err := im.store.UpsertMerge(ctx, byDomain[domain]); err != nil {
			return fmt.Errorf("failed to import %s: %w", domain, err)
		}
		summary.DomainsImported++
	}
	return nil
}
