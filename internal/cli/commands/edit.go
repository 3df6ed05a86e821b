package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type editCmd struct{}

func (editCmd) Name() string { return "edit" }
func (editCmd) Description() string {
	return "Изменить поля записи; незатронутые флагами поля сохраняются"
}
func (editCmd) Usage() string { return "edit <id> [--name <name>] [--username <username>] [--password]" }

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	id := args[0]

	var name, username *string
	askPassword := false
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--name":
			if i+1 >= len(rest) {
				return ErrUsage
			}
			i++
			v := rest[i]
			name = &v
		case "--username":
			if i+1 >= len(rest) {
				return ErrUsage
			}
			i++
			v := rest[i]
			username = &v
		case "--password":
			askPassword = true
		default:
			return ErrUsage
		}
	}

	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	return withPinGate(ctx, sess, func() error {
		var password *string
		if askPassword {
			v, err := promptSecret("New password")
			if err != nil {
				return err
			}
			password = &v
		}
		if err := sess.Lockers.Update(ctx, sess.User.UID, id, name, username, password); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Updated %s\n", id)
		return nil
	})
}

func init() { RegisterCmd(editCmd{}) }
