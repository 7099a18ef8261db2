package command

import (
	"encoding/json"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var printer = message.NewPrinter(language.AmericanEnglish)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func price(p *float64) string {
	if p == nil || *p == 0 {
		return "Free"
	}
	return printer.Sprintf("$%.2f", *p)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
