package commands

import (
	"context"
	"errors"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/cli/service"
	"PassLocker/internal/config"
)

type pinForgotCmd struct{}

func (pinForgotCmd) Name() string { return "pin-forgot" }
func (pinForgotCmd) Description() string {
	return "Сбросить забытый PIN, подтвердив пароль учётной записи"
}
func (pinForgotCmd) Usage() string { return "pin-forgot" }

func (pinForgotCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	if !sess.Pins.IsSet() {
		return errors.New("PIN ещё не задан: используйте pin-set")
	}

	rec := sess.Pins.StartRecovery()
	// шаг 1: подтверждение пароля; неверный пароль оставляет поток на месте
	for {
		password, err := promptSecret("Account password")
		if err != nil {
			return err
		}
		err = rec.SubmitPassword(ctx, password)
		if err == nil {
			break
		}
		if errors.Is(err, service.ErrIncorrectPassword) {
			fmt.Fprintln(Out, err.Error())
			continue
		}
		return err
	}

	// шаг 2: новый PIN
	pin, err := promptSecret("New PIN")
	if err != nil {
		return err
	}
	confirm, err := promptSecret("Confirm PIN")
	if err != nil {
		return err
	}
	if err := rec.SubmitNewPin(ctx, pin, confirm); err != nil {
		return err
	}
	fmt.Fprintln(Out, "PIN изменён.")
	return nil
}

func init() { RegisterCmd(pinForgotCmd{}) }
