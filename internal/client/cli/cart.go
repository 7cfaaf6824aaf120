package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (a *App) Cart(ctx context.Context, _ []string) error {
	v, err := a.carts.View(ctx)
	if err != nil {
		return err
	}
	if len(v.Lines) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tOPTIONS\tPRICE\tTOTAL")
	for _, l := range v.Lines {
		if l.Pending {
			fmt.Fprintf(tw, "%s\t(adding...)\t\t\t\t\n", l.ProductID)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			l.ProductID, l.Name, l.Quantity, options(l.Size, l.Color), money(l.UnitPrice), money(l.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d item(s), subtotal %s\n", v.Count, money(v.Subtotal))
	if v.Guest {
		fmt.Fprintln(a.out, "Log in to check out; your cart will be kept.")
	}
	return nil
}

func options(size, color string) string {
	switch {
	case size != "" && color != "":
		return size + "/" + color
	case size != "":
		return size
	}
	return color
}

// Add puts a product into the cart. Signed-in adds are optimistic: the
// product shows as pending until the backend confirms it.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 4 {
		return errUsage
	}
	qty, err := positiveArg(args, 1, 1)
	if err != nil {
		return err
	}
	in := models.AddToCartInput{ProductID: args[0], Quantity: qty}
	if len(args) > 2 {
		in.SelectedSize = args[2]
	}
	if len(args) > 3 {
		in.SelectedColor = args[3]
	}

	guest := !a.isLoggedIn(ctx)
	if err := a.carts.Add(ctx, in); err != nil {
		return err
	}
	if guest {
		fmt.Fprintln(a.out, "Added to your guest cart")
	}
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	guest := !a.isLoggedIn(ctx)
	if err := a.carts.Remove(ctx, args[0]); err != nil {
		return err
	}
	if guest {
		fmt.Fprintln(a.out, "Removed from your guest cart")
	}
	return nil
}

func (a *App) Quantity(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	n, err := positiveArg(args, 1, 0)
	if err != nil {
		return err
	}
	guest := !a.isLoggedIn(ctx)
	if err := a.carts.SetQuantity(ctx, args[0], n); err != nil {
		return err
	}
	if guest {
		fmt.Fprintln(a.out, "Quantity updated")
	}
	return nil
}

func (a *App) Clear(ctx context.Context, _ []string) error {
	guest := !a.isLoggedIn(ctx)
	if err := a.carts.Clear(ctx); err != nil {
		return err
	}
	if guest {
		fmt.Fprintln(a.out, "Guest cart cleared")
	}
	return nil
}

func (a *App) Refresh(ctx context.Context, _ []string) error {
	if err := a.carts.Refresh(ctx); err != nil {
		return err
	}
	return a.Cart(ctx, nil)
}
