package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type deleteCmd struct{}

func (deleteCmd) Name() string        { return "delete" }
func (deleteCmd) Description() string { return "Удалить запись" }
func (deleteCmd) Usage() string       { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id := args[0]
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	return withPinGate(ctx, sess, func() error {
		ok, err := confirm(fmt.Sprintf("Delete record %s?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(Out, "Aborted.")
			return nil
		}
		if err := sess.Lockers.Delete(ctx, sess.User.UID, id); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted %s\n", id)
		return nil
	})
}

func init() { RegisterCmd(deleteCmd{}) }
