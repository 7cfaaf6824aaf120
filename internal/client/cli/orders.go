package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// Checkout asks for a shipping address and a payment method and places an
// order for the server cart. Card orders are paid right away.
func (a *App) Checkout(ctx context.Context, _ []string) error {
	if err := a.carts.Refresh(ctx); err != nil {
		return err
	}
	v, err := a.carts.View(ctx)
	if err != nil {
		return err
	}
	if len(v.Lines) == 0 {
		return common.ErrorEmptyCart
	}
	fmt.Fprintf(a.out, "Checking out %d item(s), subtotal %s\n", v.Count, money(v.Subtotal))

	addr, err := a.readAddress(ctx)
	if err != nil {
		return err
	}
	method, err := GetChoice(a.reader, "Payment method", []string{services.PaymentCard, services.PaymentCOD}, a.out)
	if err != nil {
		return err
	}

	order, err := a.orders.Checkout(ctx, addr, method)
	if order != nil {
		fmt.Fprintf(a.out, "Order %s placed, total %s\n", order.ID, money(order.TotalAmount))
		if order.IsPaid {
			fmt.Fprintln(a.out, "Payment confirmed")
		}
	}
	return err
}

func (a *App) readAddress(ctx context.Context) (models.ShippingAddress, error) {
	var addr models.ShippingAddress
	if u, ok := a.auth.CurrentUser(ctx); ok {
		addr.FullName = u.Name
		addr.Phone = u.Phone
	}

	fields := []struct {
		prompt   string
		dst      *string
		required bool
	}{
		{"Full name", &addr.FullName, true},
		{"Street", &addr.Street, true},
		{"City", &addr.City, true},
		{"Postal code", &addr.PostalCode, false},
		{"Country", &addr.Country, false},
		{"Phone", &addr.Phone, false},
	}
	for _, f := range fields {
		prompt := f.prompt
		if *f.dst != "" {
			prompt = fmt.Sprintf("%s (%s)", prompt, *f.dst)
		}
		s, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return addr, err
		}
		if s != "" {
			*f.dst = s
		}
		if f.required && *f.dst == "" {
			return addr, fmt.Errorf("%w: %s is required", common.ErrorValidation, f.prompt)
		}
	}
	return addr, nil
}

func (a *App) Orders(ctx context.Context, args []string) error {
	page, err := positiveArg(args, 0, 1)
	if err != nil {
		return err
	}
	list, err := a.orders.MyOrders(ctx, models.PageRequest{Page: page, Limit: pageSize})
	if err != nil {
		return err
	}
	if len(list.Orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tSTATUS\tPAID\tITEMS\tTOTAL")
	for _, o := range list.Orders {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%s\n", o.ID, o.Status, o.IsPaid, len(o.Items), money(o.TotalAmount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printPagination(a.out, list.Pagination)
	return nil
}

func (a *App) Order(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	o, err := a.orders.Order(ctx, args[0])
	if err != nil {
		return err
	}
	printOrder(a.out, o)
	return nil
}

func (a *App) Cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	o, err := a.orders.Cancel(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %s is now %s\n", o.ID, o.Status)
	return nil
}
