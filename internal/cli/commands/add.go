package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Добавить запись; пароль запрашивается без эха" }
func (addCmd) Usage() string       { return "add <name> [<username>]" }

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	name := args[0]
	username := ""
	if len(args) == 2 {
		username = args[1]
	}
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	return withPinGate(ctx, sess, func() error {
		password, err := promptSecret("Password for " + name)
		if err != nil {
			return err
		}
		id, err := sess.Lockers.Create(ctx, sess.User.UID, name, username, password)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Created:")
		fmt.Fprintf(Out, "  id:   %s\n", id)
		fmt.Fprintf(Out, "  name: %s\n", name)
		if username != "" {
			fmt.Fprintf(Out, "  username: %s\n", username)
		}
		return nil
	})
}

func init() { RegisterCmd(addCmd{}) }
