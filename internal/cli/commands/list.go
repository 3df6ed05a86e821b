package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "Показать все записи (без паролей)" }
func (listCmd) Usage() string       { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	list, err := sess.Lockers.List(ctx, sess.User.UID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return nil
	}
	for _, l := range list {
		fmt.Fprintf(Out, "- %s  name=%s  username=%s\n", l.ID, l.Name, l.Username)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(listCmd{}) }
