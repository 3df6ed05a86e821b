package commands

import (
	"context"
	"fmt"

	fsrepo "PassLocker/internal/cli/repo/fs"
	"PassLocker/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Завершить сессию на этом устройстве" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := (fsrepo.AuthFSStore{Path: cfg.TokenFile}).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
