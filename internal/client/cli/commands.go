package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	errLoginRequired = errors.New("please log in first")
	errUsage         = errors.New("usage")
)

type command struct {
	usage string
	help  string
	// session marks commands that need a signed-in user.
	session bool
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"login":      {usage: "login", help: "sign in", run: (*App).Login},
	"register":   {usage: "register", help: "create an account", run: (*App).Register},
	"logout":     {usage: "logout", help: "sign out", session: true, run: (*App).Logout},
	"whoami":     {usage: "whoami", help: "show the signed-in user", run: (*App).WhoAmI},
	"profile":    {usage: "profile [name|phone <value>]", help: "show or edit your profile", session: true, run: (*App).Profile},
	"avatar":     {usage: "avatar <file>", help: "upload a profile picture", session: true, run: (*App).Avatar},
	"products":   {usage: "products [page] [category]", help: "list products", run: (*App).Products},
	"search":     {usage: "search <text>", help: "search products", run: (*App).Search},
	"product":    {usage: "product <id>", help: "show a product", run: (*App).Product},
	"categories": {usage: "categories", help: "list categories", run: (*App).Categories},
	"cart":       {usage: "cart", help: "show the cart", run: (*App).Cart},
	"add":        {usage: "add <id> [qty] [size] [color]", help: "add a product to the cart", run: (*App).Add},
	"remove":     {usage: "remove <id>", help: "remove a product from the cart", run: (*App).Remove},
	"qty":        {usage: "qty <id> <n>", help: "change a quantity", run: (*App).Quantity},
	"clear":      {usage: "clear", help: "empty the cart", run: (*App).Clear},
	"refresh":    {usage: "refresh", help: "reload the cart from the server", session: true, run: (*App).Refresh},
	"checkout":   {usage: "checkout", help: "place an order for the cart", session: true, run: (*App).Checkout},
	"orders":     {usage: "orders [page]", help: "list your orders", session: true, run: (*App).Orders},
	"order":      {usage: "order <id>", help: "show an order", session: true, run: (*App).Order},
	"cancel":     {usage: "cancel <id>", help: "cancel a pending order", session: true, run: (*App).Cancel},
}

var commandOrder = []string{
	"products", "search", "product", "categories",
	"cart", "add", "remove", "qty", "clear", "refresh",
	"checkout", "orders", "order", "cancel",
	"whoami", "profile", "avatar", "login", "register", "logout",
}

// Exec runs one shell command.
func (a *App) Exec(ctx context.Context, name string, args []string) error {
	c, ok := commands[name]
	if !ok {
		return errUnknownCommand
	}
	if c.session && !a.isLoggedIn(ctx) {
		return errLoginRequired
	}
	err := c.run(a, ctx, args)
	if errors.Is(err, errUsage) {
		return fmt.Errorf("%w: %s", errUsage, c.usage)
	}
	return err
}

func helpText(loggedIn bool) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range commandOrder {
		c := commands[name]
		if c.session && !loggedIn {
			continue
		}
		if loggedIn && (name == "login" || name == "register") {
			continue
		}
		fmt.Fprintf(&b, "  %-30s %s\n", c.usage, c.help)
	}
	b.WriteString("  exit                           leave the shell")
	return b.String()
}
