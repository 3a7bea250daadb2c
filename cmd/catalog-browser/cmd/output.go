package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/catalog-browser/internal/catalog"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(w io.Writer, products []catalog.Product, header bool) error {
	tw := newTabWriter(w)
	if header {
		tw.writef("ID\tTITLE\tPRICE\tDISCOUNTED\tRATING\tSTOCK\tCATEGORY\n")
	}
	for i := range products {
		p := &products[i]
		tw.writef("%d\t%s\t$%.2f\t$%.2f\t%.1f\t%d\t%s\n",
			p.ID,
			truncate(p.Title, 40),
			p.Price,
			p.DiscountedPrice(),
			p.Rating,
			p.Stock,
			p.Category,
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
