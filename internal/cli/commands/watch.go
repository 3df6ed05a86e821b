package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/cli/model/view"
	"PassLocker/internal/config"
)

type watchCmd struct{}

func (watchCmd) Name() string { return "watch" }
func (watchCmd) Description() string {
	return "Следить за изменениями записей в реальном времени"
}
func (watchCmd) Usage() string { return "watch" }

func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	return withPinGate(ctx, sess, func() error {
		fmt.Fprintln(Out, "Watching... (Ctrl+C для выхода)")
		done := make(chan error, 1)
		cancel, err := sess.Lockers.Subscribe(ctx, sess.User.UID,
			func(list []view.DecryptedLocker) {
				fmt.Fprintf(Out, "--- snapshot (%d) ---\n", len(list))
				for _, l := range list {
					mark := ""
					if l.Degraded {
						mark = " (!)"
					}
					fmt.Fprintf(Out, "- %s  name=%s  username=%s%s\n", l.ID, l.Name, l.Username, mark)
				}
			},
			func(err error) {
				// поток не переподключается сам: сообщаем и выходим
				select {
				case done <- err:
				default:
				}
			})
		if err != nil {
			return err
		}
		defer cancel()

		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			return fmt.Errorf("подписка прервана: %w", err)
		}
	})
}

func init() { RegisterCmd(watchCmd{}) }
