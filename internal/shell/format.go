package shell

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// Column widths of the item table. Longer values are cut, not wrapped.
const (
	idWidth          = 4
	nameWidth        = 20
	locationWidth    = 15
	quantityWidth    = 8
	descriptionWidth = 30

	ruleWidth = 80
)

// writeTable prints items under title as a fixed-width table.
func writeTable(w io.Writer, title string, items []model.Item) {
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-*s | %-*s | %-*s | %-*s | %s\n",
		idWidth, "ID", nameWidth, "Name", locationWidth, "Location", quantityWidth, "Quantity", "Description")
	fmt.Fprintln(w, rule)

	for _, item := range items {
		fmt.Fprintf(w, "%-*d | %-*s | %-*s | %-*d | %s\n",
			idWidth, item.ID,
			nameWidth, truncate(item.Name, nameWidth),
			locationWidth, truncate(item.Location, locationWidth),
			quantityWidth, item.Quantity,
			truncate(item.Description, descriptionWidth),
		)
	}
}

// writeItem prints every field of item, one per line.
func writeItem(w io.Writer, item *model.Item) {
	fmt.Fprintf(w, "ID:            %d\n", item.ID)
	fmt.Fprintf(w, "Name:          %s\n", item.Name)
	fmt.Fprintf(w, "Description:   %s\n", item.Description)
	fmt.Fprintf(w, "Location:      %s\n", item.Location)
	fmt.Fprintf(w, "Quantity:      %d\n", item.Quantity)
	fmt.Fprintf(w, "Added:         %s\n", item.DateAdded.Local().Format(time.DateTime))
	fmt.Fprintf(w, "Last modified: %s\n", item.LastModified.Local().Format(time.DateTime))
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
