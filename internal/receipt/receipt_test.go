package receipt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/promo"
)

var (
	toothbrush = catalog.Product{Name: "toothbrush", Unit: catalog.UnitEach}
	apples     = catalog.Product{Name: "apples", Unit: catalog.UnitKilo}
)

func TestTotalSumsItemsAndDiscounts(t *testing.T) {
	r := New()
	require.NotEmpty(t, r.ID)

	r.AddProduct(toothbrush, 3, 0.99, 2.97)
	r.AddProduct(apples, 1.5, 1.99, 2.985)
	r.AddDiscount(promo.Discount{Product: &toothbrush, Description: "3 for 2", Amount: -0.99})

	require.InDelta(t, 4.965, r.Total(), 1e-9)
}

func TestPrintLayout(t *testing.T) {
	r := New()
	r.AddProduct(toothbrush, 3, 0.99, 2.97)
	r.AddProduct(apples, 1.5, 1.99, 2.985)
	r.AddDiscount(promo.Discount{Product: &toothbrush, Description: "3 for 2", Amount: -0.99})
	r.AddDiscount(promo.Discount{Description: "bundle (chocolate + toothpaste)", Amount: -0.679})

	out := Printer{}.Print(r)
	lines := strings.Split(out, "\n")

	require.Equal(t, "toothbrush                          2.97", lines[0])
	require.Equal(t, "  0.99 * 3", lines[1])
	require.Equal(t, "apples                              2.98", lines[2])
	require.Equal(t, "  1.99 * 1.500", lines[3])
	require.Equal(t, "3 for 2(toothbrush)                -0.99", lines[4])
	require.Contains(t, lines[5], "bundle (chocolate + toothpaste)")
	require.Contains(t, out, "Total: ")

	for _, i := range []int{0, 2, 4} {
		require.Len(t, lines[i], 40)
	}
}

func TestPrintSingleUnitLineOmitsBreakdown(t *testing.T) {
	r := New()
	r.AddProduct(toothbrush, 1, 0.99, 0.99)
	out := Printer{}.Print(r)
	require.NotContains(t, out, "*")
}
