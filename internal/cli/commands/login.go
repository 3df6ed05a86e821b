package commands

import (
	"context"
	"errors"
	"fmt"

	"PassLocker/internal/cli/api"
	"PassLocker/internal/cli/auth"
	fsrepo "PassLocker/internal/cli/repo/fs"
	"PassLocker/internal/cli/service"
	"PassLocker/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Войти и сохранить сессию" }
func (loginCmd) Usage() string       { return "login <email>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	email := args[0]
	password, err := promptSecret("Password")
	if err != nil {
		return err
	}

	identity := api.NewIdentityClient(cfg.ServerURL)
	sessions := service.NewSessionService(identity, fsrepo.AuthFSStore{Path: cfg.TokenFile}, auth.NewWatcher(nil))
	u, err := sessions.Login(ctx, email, password)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrAuth), errors.Is(err, api.ErrUserNotFound):
		return errors.New("invalid email or password")
	case errors.Is(err, service.ErrEmailNotVerified):
		return errors.New("email не подтверждён: выполните 'verify-email'")
	default:
		return err
	}

	fmt.Fprintf(Out, "Logged in as %s\n", u.Email)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
