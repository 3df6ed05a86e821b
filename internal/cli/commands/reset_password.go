package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/api"
	"PassLocker/internal/cli/service"
	"PassLocker/internal/config"
)

type resetPasswordCmd struct{}

func (resetPasswordCmd) Name() string        { return "reset-password" }
func (resetPasswordCmd) Description() string { return "Отправить письмо для сброса пароля учётной записи" }
func (resetPasswordCmd) Usage() string       { return "reset-password <email>" }

func (resetPasswordCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	email := args[0]
	identity := api.NewIdentityClient(cfg.ServerURL)
	if err := service.RequestPasswordReset(ctx, identity, email); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Password reset email sent to %s\n", email)
	return nil
}

func init() { RegisterCmd(resetPasswordCmd{}) }
