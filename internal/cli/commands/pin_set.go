package commands

import (
	"context"
	"errors"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type pinSetCmd struct{}

func (pinSetCmd) Name() string        { return "pin-set" }
func (pinSetCmd) Description() string { return "Задать PIN для защиты секретов" }
func (pinSetCmd) Usage() string       { return "pin-set" }

func (pinSetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	if sess.Pins.IsSet() {
		return errors.New("PIN уже задан: используйте pin-change")
	}
	pin, err := promptSecret("New PIN")
	if err != nil {
		return err
	}
	confirm, err := promptSecret("Confirm PIN")
	if err != nil {
		return err
	}
	if err := sess.Pins.Setup(ctx, pin, confirm); err != nil {
		return err
	}
	fmt.Fprintln(Out, "PIN установлен.")
	return nil
}

func init() { RegisterCmd(pinSetCmd{}) }
