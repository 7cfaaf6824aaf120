package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// positiveArg parses args[i] as a positive integer, or returns def when the
// argument is absent.
func positiveArg(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a positive number", args[i])
	}
	return n, nil
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(w, "  role:  %s\n", u.Role)
	if u.Phone != "" {
		fmt.Fprintf(w, "  phone: %s\n", u.Phone)
	}
	if u.Avatar != "" {
		fmt.Fprintf(w, "  avatar: %s\n", u.Avatar)
	}
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category.Name, money(p.Price), p.Stock)
	}
	_ = tw.Flush()
}

func printPagination(w io.Writer, p models.Pagination) {
	if p.TotalPages <= 1 {
		return
	}
	fmt.Fprintf(w, "Page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
}

func printOrder(w io.Writer, o *models.Order) {
	paid := "unpaid"
	if o.IsPaid {
		paid = "paid"
	}
	fmt.Fprintf(w, "Order %s: %s, %s, %s\n", o.ID, o.Status, o.PaymentMethod, paid)
	tw := newTable(w)
	for _, it := range o.Items {
		fmt.Fprintf(tw, "  %s\t%s\tx%d\t%s\n", it.Product.ID, it.Product.Name, it.Quantity, money(it.Price))
	}
	_ = tw.Flush()
	a := o.ShippingAddress
	fmt.Fprintf(w, "Ship to: %s, %s, %s %s %s\n", a.FullName, a.Street, a.City, a.PostalCode, a.Country)
	fmt.Fprintf(w, "Total: %s\n", money(o.TotalAmount))
}
