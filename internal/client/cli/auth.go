package cli

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/filex"
)

// register prompts for the account details, creates the account and keeps
// the returned token.
func (a *App) register(ctx context.Context, _ []string) error {
	email, err := ReadLine(a.reader, "Email: ", a.out)
	if err != nil {
		return err
	}
	username, err := ReadLine(a.reader, "Username: ", a.out)
	if err != nil {
		return err
	}
	fullName, err := ReadLine(a.reader, "Full name: ", a.out)
	if err != nil {
		return err
	}
	password, err := readSecretFn("Password: ", a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Register(ctx, email, username, fullName, password)
	if err != nil {
		return err
	}
	if err := a.saveToken(res.Token); err != nil {
		return err
	}

	a.printf("Registered as %s\n", res.User.Username)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := ReadLine(a.reader, "Email: ", a.out)
	if err != nil {
		return err
	}
	password, err := readSecretFn("Password: ", a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.saveToken(res.Token); err != nil {
		return err
	}

	a.printf("Logged in as %s\n", res.User.Username)
	return nil
}

// logout forgets the stored token. Tokens are not revoked server-side.
func (a *App) logout(_ context.Context, _ []string) error {
	if err := filex.RemoveIfExists(a.tokenPath); err != nil {
		return err
	}
	a.api.SetToken("")
	a.printf("Logged out\n")
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	a.printf("%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.FullName)
	return nil
}
