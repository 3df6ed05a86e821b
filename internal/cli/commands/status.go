package commands

import (
	"context"
	"fmt"

	"PassLocker/internal/cli/bootstrap"
	"PassLocker/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать текущую сессию" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := bootstrap.OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	u := sess.User
	fmt.Fprintf(Out, "Email:     %s\n", u.Email)
	if u.DisplayName != "" {
		fmt.Fprintf(Out, "Name:      %s\n", u.DisplayName)
	}
	fmt.Fprintf(Out, "Verified:  %t\n", u.EmailVerified)
	if !u.LastSignIn.IsZero() {
		fmt.Fprintf(Out, "Last sign-in: %s\n", u.LastSignIn.Format("2006-01-02 15:04:05"))
	}
	if sess.Pins.IsSet() {
		fmt.Fprintln(Out, "PIN:       set")
	} else {
		fmt.Fprintln(Out, "PIN:       not set")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
