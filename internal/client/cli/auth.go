package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/filex"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, password and an optional phone and
// creates the account. On success the user is signed in and any guest cart
// is merged into the new server cart.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := GetRequiredText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := GetRequiredText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Register(ctx, name, email, password, phone)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for credentials and signs in. Guest cart lines are merged
// into the server cart; lines the backend refuses stay in the guest cart.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := GetRequiredText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, ok := a.auth.CurrentUser(ctx)
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	printUser(a.out, u)
	return nil
}

// Profile reloads the profile, or with "name <value>" / "phone <value>"
// updates that field first.
func (a *App) Profile(ctx context.Context, args []string) error {
	var (
		u   *models.User
		err error
	)
	switch {
	case len(args) == 0:
		u, err = a.auth.RefreshProfile(ctx)
	case len(args) >= 2 && args[0] == "name":
		u, err = a.auth.UpdateProfile(ctx, models.UserInput{Name: joinArgs(args[1:])})
	case len(args) == 2 && args[0] == "phone":
		u, err = a.auth.UpdateProfile(ctx, models.UserInput{Phone: args[1]})
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := filex.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	u, err := a.auth.UpdateProfile(ctx, models.UserInput{
		Avatar: &models.Upload{FileName: f.Name, ContentType: f.ContentType, Content: f},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Avatar updated: %s\n", u.Avatar)
	return nil
}
