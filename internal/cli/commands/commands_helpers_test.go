package commands

import (
	"bytes"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (токен) создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	t.Setenv("TOKEN_FILE", filepath.Join(dir, "auth_token"))
	return dir
}

// перехват Out на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// stubIn подменяет построчный ввод (подтверждения) заданным текстом
func stubIn(t *testing.T, s string) {
	t.Helper()
	old := In
	In = strings.NewReader(s)
	t.Cleanup(func() { In = old })
}

// stubSecrets подменяет no-echo ввод очередью значений
func stubSecrets(t *testing.T, values ...string) {
	t.Helper()
	old := readPassword
	i := 0
	readPassword = func() (string, error) {
		if i >= len(values) {
			return "", fmt.Errorf("unexpected secret prompt #%d", i+1)
		}
		v := values[i]
		i++
		return v, nil
	}
	t.Cleanup(func() { readPassword = old })
}

// mintToken выпускает ID-токен с нужными claims для тестовых сессий
func mintToken(t *testing.T, uid, email string, verified bool) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":            uid,
		"email":          email,
		"email_verified": verified,
		"last_sign_in":   time.Now().Unix(),
		"exp":            time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
