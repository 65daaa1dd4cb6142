package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/company-scout/internal/crawl"
	"github.com/jonathan/company-scout/internal/record"
	"github.com/jonathan/company-scout/internal/search"
)

func TestPrintCrawlSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCrawlSummary(&crawl.Summary{
		DomainsAttempted: 10,
		DomainsSucceeded: 8,
		PagesAttempted:   24,
		PagesFetched:     22,
	})

	out := buf.String()
	assert.Contains(t, out, "CRAWL SUMMARY")
	assert.Contains(t, out, "Domains attempted: 10")
	assert.Contains(t, out, "Pages fetched:     22")
}

func TestPrintCrawlSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCrawlSummary(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := record.New("acme.com")
	rec.AddCompanyNames("Acme Corp")
	rec.AddPhones("5551234567", "5559876543")
	p.PrintRecord(rec)

	out := buf.String()
	assert.Contains(t, out, "COMPANY RECORD")
	assert.Contains(t, out, "Domain: acme.com")
	assert.Contains(t, out, "• Acme Corp")
	assert.Contains(t, out, "• 5551234567")
}

func TestPrintRecord_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := record.New("acme.com")
	rec.AddURLs("a.com/1", "a.com/2", "a.com/3", "a.com/4", "a.com/5", "a.com/6", "a.com/7")
	p.PrintRecord(rec)

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	acme := record.New("acme.com")
	acme.AddCompanyNames("Acme Corp")
	p.PrintMatches([]search.Hit{
		{Record: acme, Score: 5.5},
		{Record: record.New("globex.com"), Score: 2.0},
	})

	out := buf.String()
	assert.Contains(t, out, "RANKED MATCHES")
	assert.Contains(t, out, "#1  acme.com")
	assert.Contains(t, out, "Score: 5.50")
	assert.Contains(t, out, "#2  globex.com")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatches(nil)
	assert.Empty(t, buf.String())
}

func TestBoxLinesAreBounded(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := record.New("acme.com")
	rec.AddAddresses("12345 Extremely Long Boulevard Name, Some Very Long City Name, CA 90210-1234")
	p.PrintRecord(rec)

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth+2)
	}
}
