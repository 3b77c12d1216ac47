package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/jet-merchant-client/internal/jet"
	domain "github.com/donaldgifford/jet-merchant-client/pkg/types"
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

func printProductDetail(w io.Writer, p *domain.Product) error {
	tw := newTabWriter(w)
	tw.writef("SKU:\t%s\n", p.SKU)
	tw.writef("Title:\t%s\n", truncate(p.Title, 60))
	tw.writef("Status:\t%s\n", orDash(string(p.Status)))
	if len(p.SubStatus) > 0 {
		tw.writef("Sub-status:\t%s\n", strings.Join(p.SubStatus, ", "))
	}
	tw.writef("Brand:\t%s\n", orDash(p.Brand))
	for _, code := range domain.SortProductCodes(p.ProductCodes) {
		tw.writef("%s:\t%s\n", code.Type, code.Code)
	}
	tw.writef("Multipack:\t%d\n", p.MultipackQuantity)
	if p.MSRP > 0 {
		tw.writef("MSRP:\t$%.2f\n", p.MSRP)
	}
	tw.writef("MAP:\t%s\n", orDash(string(p.MAPImplementation)))
	if p.JetRetailSKU != "" {
		tw.writef("Jet SKU:\t%s\n", p.JetRetailSKU)
	}
	if p.SKULastUpdate != nil {
		tw.writef("Updated:\t%s\n", p.SKULastUpdate.Format("2006-01-02 15:04:05"))
	}
	return tw.finish()
}

func printSKUs(w io.Writer, skus []string) error {
	tw := newTabWriter(w)
	tw.writef("#\tSKU\n")
	for i, sku := range skus {
		tw.writef("%d\t%s\n", i+1, sku)
	}
	return tw.finish()
}

func printResponse(w io.Writer, resp *jet.Response) error {
	tw := newTabWriter(w)
	tw.writef("Status:\t%d (%s)\n", resp.StatusCode(), resp.Class())
	if ct := resp.Header().Get("Content-Type"); ct != "" {
		tw.writef("Content-Type:\t%s\n", ct)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if v, err := resp.JSON(); err == nil {
		return writeJSON(w, v)
	}
	_, err := fmt.Fprintln(w, resp.Content())
	return err
}

func outputJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
