package crawl

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
)

// domainPattern validates bare domains like "acme.com" or "shop.acme.co.uk".
var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsValidDomain reports whether s looks like a crawlable bare domain.
func IsValidDomain(s string) bool {
	return domainPattern.MatchString(s)
}

// LoadDomains reads the "domain" column of a CSV file and returns the valid
// domains plus the count of rows rejected by validation. Invalid rows are
// logged and skipped; they never abort the load.
func LoadDomains(path string) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open domains file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadDomains(f)
}

// ReadDomains parses domains from CSV content with a "domain" header column.
func ReadDomains(r io.Reader) ([]string, int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	domainIdx := -1
	for i, col := range header {
		if strings.TrimSpace(strings.ToLower(col)) == "domain" {
			domainIdx = i
			break
		}
	}
	if domainIdx < 0 {
		return nil, 0, fmt.Errorf("CSV file does not have a 'domain' column")
	}

	var domains []string
	invalid := 0
	seen := make(map[string]bool)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, invalid, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if domainIdx >= len(row) {
			invalid++
			continue
		}

		domain := strings.TrimSpace(row[domainIdx])
		if !IsValidDomain(domain) {
			invalid++
			log.Printf("[crawl] invalid domain skipped: %q", domain)
			continue
		}
		if !seen[domain] {
			seen[domain] = true
			domains = append(domains, domain)
		}
	}

	return domains, invalid, nil
}
