package commands

import (
	"context"
	"errors"
	"fmt"

	"PassLocker/internal/cli/api"
	fsrepo "PassLocker/internal/cli/repo/fs"
	"PassLocker/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Создать учётную запись и отправить письмо подтверждения" }
func (registerCmd) Usage() string       { return "register <email> [display-name]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	email := args[0]
	displayName := ""
	if len(args) == 2 {
		displayName = args[1]
	}

	password, err := promptSecret("Password")
	if err != nil {
		return err
	}
	confirm, err := promptSecret("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	identity := api.NewIdentityClient(cfg.ServerURL)
	token, err := identity.SignUp(ctx, email, password, displayName)
	if err != nil {
		if errors.Is(err, api.ErrEmailTaken) {
			return fmt.Errorf("email %s уже зарегистрирован", email)
		}
		return err
	}
	// сохраняем pending-токен: он нужен verify-email для опроса состояния
	if err := (fsrepo.AuthFSStore{Path: cfg.TokenFile}).Save(token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := identity.SendVerificationEmail(ctx); err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}
	fmt.Fprintf(Out, "Учётная запись %s создана.\n", email)
	fmt.Fprintln(Out, "Письмо подтверждения отправлено. Выполните 'verify-email', чтобы дождаться подтверждения.")
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
