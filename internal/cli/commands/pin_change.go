package commands

import (
	"context"
	"errors"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type pinChangeCmd struct{}

func (pinChangeCmd) Name() string        { return "pin-change" }
func (pinChangeCmd) Description() string { return "Сменить PIN (требуется текущий PIN)" }
func (pinChangeCmd) Usage() string       { return "pin-change" }

func (pinChangeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
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
	current, err := promptSecret("Current PIN")
	if err != nil {
		return err
	}
	newPin, err := promptSecret("New PIN")
	if err != nil {
		return err
	}
	confirm, err := promptSecret("Confirm PIN")
	if err != nil {
		return err
	}
	if err := sess.Pins.Change(ctx, current, newPin, confirm); err != nil {
		return err
	}
	fmt.Fprintln(Out, "PIN изменён.")
	return nil
}

func init() { RegisterCmd(pinChangeCmd{}) }
