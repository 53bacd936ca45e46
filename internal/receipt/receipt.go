// Package receipt renders the printable confirmation offered for download
// after a successful order submission.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/botstudio/backend/internal/types"
)

const footer = "Thank you for your order! Our team will reach out shortly."

// Render produces the receipt body and its download filename. It is a pure
// function of the order and the supplied clock value: identical input yields
// identical output. Labeled lines with an empty value are omitted.
func Render(order types.Order, now time.Time) ([]byte, string) {

	var b strings.Builder

	b.WriteString("================================\n")
	b.WriteString("         ORDER RECEIPT\n")
	b.WriteString("================================\n")

	writeLine(&b, "Date", now.Format("2006-01-02 15:04"))
	writeLine(&b, "Customer", order.CustomerName)
	writeLine(&b, "Category", order.Category)
	writeLine(&b, "Features", strings.Join(order.Features, ", "))
	writeLine(&b, "Budget", order.Budget)
	writeLine(&b, "Timeline", string(order.Timeline))

	b.WriteString("--------------------------------\n")
	b.WriteString(footer)
	b.WriteString("\n")

	return []byte(b.String()), Filename(order.Category, now)
}

func writeLine(b *strings.Builder, label string, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

// Filename builds the deterministic download name,
// receipt_<category>_<ISO-date>.txt. The category is lowercased with spaces
// collapsed to underscores; an empty category falls back to "order".
func Filename(category string, now time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(category))
	slug = strings.ReplaceAll(slug, " ", "_")
	if slug == "" {
		slug = "order"
	}
	return fmt.Sprintf("receipt_%s_%s.txt", slug, now.Format("2006-01-02"))
}
