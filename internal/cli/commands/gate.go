package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
)

// withPinGate исполняет action под PIN-гейтом. Если PIN ещё не задан,
// первая защищённая операция принудительно проходит через установку PIN
// и лишь затем выполняется.
func withPinGate(ctx context.Context, sess *bootstrap.Session, action func() error) error {
	if !sess.Pins.IsSet() {
		fmt.Fprintln(Out, "Секреты защищаются PIN-кодом. Задайте его сейчас.")
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
		return action()
	}
	return sess.Pins.Require(ctx,
		func() (string, error) { return promptSecret("PIN") },
		action)
}
