package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

const pageSize = 10

// Products lists one page of the catalogue, optionally within a category
// given by id or name.
func (a *App) Products(ctx context.Context, args []string) error {
	page, err := positiveArg(args, 0, 1)
	if err != nil {
		return err
	}
	var f models.ProductFilter
	if len(args) > 1 {
		f.Category = joinArgs(args[1:])
	}
	return a.listProducts(ctx, page, f)
}

func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	return a.listProducts(ctx, 1, models.ProductFilter{Search: joinArgs(args)})
}

func (a *App) listProducts(ctx context.Context, page int, f models.ProductFilter) error {
	res := a.catalog.GetProducts(ctx, models.PageRequest{Page: page, Limit: pageSize}, f)
	if !res.Success {
		return res.Err()
	}
	printProducts(a.out, res.Data.Products)
	printPagination(a.out, res.Data.Pagination)
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	res := a.catalog.GetProduct(ctx, args[0])
	if !res.Success {
		return res.Err()
	}
	p := res.Data

	fmt.Fprintf(a.out, "%s (%s)\n", p.Name, p.ID)
	if p.Description != "" {
		fmt.Fprintln(a.out, p.Description)
	}
	fmt.Fprintf(a.out, "Price: %s\n", money(p.Price))
	if p.Category.Name != "" {
		fmt.Fprintf(a.out, "Category: %s\n", p.Category.Name)
	}
	if len(p.Sizes) > 0 {
		fmt.Fprintf(a.out, "Sizes: %s\n", strings.Join(p.Sizes, ", "))
	}
	if len(p.Colors) > 0 {
		fmt.Fprintf(a.out, "Colors: %s\n", strings.Join(p.Colors, ", "))
	}
	if p.Stock > 0 {
		fmt.Fprintf(a.out, "In stock: %d\n", p.Stock)
	} else {
		fmt.Fprintln(a.out, "Out of stock")
	}

	in, err := a.carts.InCart(ctx, p.ID)
	if err != nil {
		return err
	}
	if in {
		fmt.Fprintln(a.out, "In your cart")
	}
	return nil
}

func (a *App) Categories(ctx context.Context, _ []string) error {
	res := a.catalog.GetCategories(ctx)
	if !res.Success {
		return res.Err()
	}
	if len(res.Data) == 0 {
		fmt.Fprintln(a.out, "No categories")
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, c := range res.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	return tw.Flush()
}
