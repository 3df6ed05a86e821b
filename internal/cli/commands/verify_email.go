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

type verifyEmailCmd struct{}

func (verifyEmailCmd) Name() string { return "verify-email" }
func (verifyEmailCmd) Description() string {
	return "Дождаться подтверждения email (опрос каждые 5 секунд)"
}
func (verifyEmailCmd) Usage() string { return "verify-email [--resend]" }

func (verifyEmailCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	resend := false
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "--resend":
		resend = true
	default:
		return ErrUsage
	}

	store := fsrepo.AuthFSStore{Path: cfg.TokenFile}
	token, err := store.Load()
	if err != nil {
		return errors.New("нет сохранённой сессии: выполните register или login")
	}
	if _, err := auth.ParseSession(token); err != nil {
		return fmt.Errorf("сохранённый токен повреждён: %w", err)
	}

	identity := api.NewIdentityClient(cfg.ServerURL)
	identity.Token = token

	verifier := service.NewVerifyService(identity, nil)
	if resend {
		if err := verifier.Resend(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Письмо подтверждения отправлено повторно.")
	}

	fmt.Fprintln(Out, "Ожидание подтверждения email... (Ctrl+C для отмены)")
	if err := verifier.Wait(ctx); err != nil {
		if errors.Is(err, service.ErrVerificationExpired) {
			_ = store.Clear()
			return errors.New("окно подтверждения истекло, регистрация удалена; выполните register заново")
		}
		return err
	}

	// Reload внутри ожидания обновил токен свежими claims
	if identity.Token != "" && identity.Token != token {
		if err := store.Save(identity.Token); err != nil {
			return fmt.Errorf("saving refreshed session: %w", err)
		}
	}
	fmt.Fprintln(Out, "Email подтверждён. Теперь выполните login.")
	return nil
}

func init() { RegisterCmd(verifyEmailCmd{}) }
