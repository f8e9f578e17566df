package receipt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

// Printer renders a receipt as fixed-width text for register output.
type Printer struct {
	Columns int
}

// Print renders the receipt: one line per item with the price right-aligned,
// a unit-price breakdown for multi-unit lines, discounts, and the total.
func (p Printer) Print(r *Receipt) string {
	columns := p.Columns
	if columns <= 0 {
		columns = 40
	}

	var b strings.Builder
	for _, item := range r.Items {
		b.WriteString(line(columns, item.Product.Name, fmt.Sprintf("%.2f", item.TotalPrice)))
		if item.Quantity != 1 {
			b.WriteString(fmt.Sprintf("  %.2f * %s\n", item.Price, formatQuantity(item.Product.Unit, item.Quantity)))
		}
	}
	for _, discount := range r.Discounts {
		description := discount.Description
		if discount.Product != nil {
			description = fmt.Sprintf("%s(%s)", discount.Description, discount.Product.Name)
		}
		b.WriteString(line(columns, description, fmt.Sprintf("%.2f", discount.Amount)))
	}
	b.WriteString("\n")
	b.WriteString(line(columns, "Total: ", fmt.Sprintf("%.2f", r.Total())))
	return b.String()
}

func line(columns int, left, right string) string {
	padding := columns - len(left) - len(right)
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right + "\n"
}

func formatQuantity(unit catalog.Unit, quantity float64) string {
	if unit == catalog.UnitEach {
		return strconv.Itoa(int(quantity))
	}
	return fmt.Sprintf("%.3f", quantity)
}
