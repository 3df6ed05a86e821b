package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Показать запись вместе с паролем" }
func (getCmd) Usage() string       { return "get <id>" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id := args[0]
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	return withPinGate(ctx, sess, func() error {
		list, err := sess.Lockers.List(ctx, sess.User.UID)
		if err != nil {
			return err
		}
		for _, l := range list {
			if l.ID != id {
				continue
			}
			fmt.Fprintf(Out, "id:       %s\n", l.ID)
			fmt.Fprintf(Out, "name:     %s\n", l.Name)
			fmt.Fprintf(Out, "username: %s\n", l.Username)
			fmt.Fprintf(Out, "password: %s\n", l.Password)
			if l.Degraded {
				fmt.Fprintln(Out, "! пароль не расшифровался: показан сохранённый шифртекст")
			}
			return nil
		}
		return fmt.Errorf("запись %s не найдена", id)
	})
}

func init() { RegisterCmd(getCmd{}) }
