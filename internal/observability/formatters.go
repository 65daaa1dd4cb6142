// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/company-scout/internal/crawl"
	"github.com/jonathan/company-scout/internal/record"
	"github.com/jonathan/company-scout/internal/search"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCrawlSummary outputs a human-readable summary of a finished crawl run.
func (p *Printer) PrintCrawlSummary(summary *crawl.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Domains attempted: %d\n", summary.DomainsAttempted))
	sb.WriteString(fmt.Sprintf("Domains succeeded: %d\n", summary.DomainsSucceeded))
	sb.WriteString(fmt.Sprintf("Pages attempted:   %d\n", summary.PagesAttempted))
	sb.WriteString(fmt.Sprintf("Pages fetched:     %d", summary.PagesFetched))

	p.printBox("CRAWL SUMMARY", sb.String())
}

// PrintRecord outputs a stored company record field by field.
func (p *Printer) PrintRecord(rec *record.CompanyRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Domain: %s\n", rec.Domain))
	writeList(&sb, "Names", rec.CompanyNames)
	writeList(&sb, "Phones", rec.Phones)
	writeList(&sb, "Social", rec.SocialMedia)
	writeList(&sb, "Addresses", rec.Addresses)
	writeList(&sb, "Pages", rec.PageTypes)
	writeList(&sb, "URLs", rec.URLs)

	p.printBox("COMPANY RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the ranked candidate list from a debug search.
func (p *Printer) PrintMatches(hits []search.Hit) {
	if len(hits) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates ranked: %d\n\n", len(hits)))

	count := min(len(hits), maxItemsToShow)
	for i := 0; i < count; i++ {
		hit := hits[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, hit.Record.Domain))
		sb.WriteString(fmt.Sprintf("    Score: %.2f\n", hit.Score))
		if len(hit.Record.CompanyNames) > 0 {
			names := strings.Join(hit.Record.CompanyNames, ", ")
			if len(names) > 40 {
				names = names[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Names: %s\n", names))
		}
	}
	if len(hits) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(hits)-maxItemsToShow))
	}

	p.printBox("RANKED MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s:\n", label))
	count := min(len(values), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", values[i]))
	}
	if len(values) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(values)-maxItemsToShow))
	}
}
