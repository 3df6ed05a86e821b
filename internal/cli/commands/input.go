package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword — тестовый шов над term.ReadPassword: в тестах
// подменяется стабом, чтобы не трогать терминал.
var readPassword = func() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
// In — источник построчного ввода CLI. Переназначается в тестах.
var In io.Reader = os.Stdin

// promptSecret печатает приглашение и читает секрет без эха.
func promptSecret(label string) (string, error) {
	fmt.Fprintf(Out, "%s: ", label)
	v, err := readPassword()
	fmt.Fprintln(Out)
	if err != nil {
		return "", err
	}
	return v, nil
}

// confirm задаёт вопрос и принимает только явное y/yes.
func confirm(question string) (bool, error) {
	fmt.Fprintf(Out, "%s [y/N]: ", question)
	r := bufio.NewReader(In)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
