package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"PassLocker/internal/config"
)

// --- register tests ---
func TestRegister_Run_SuccessAndErrors(t *testing.T) {
	withTempConfig(t)
	stubSecrets(t, "pw-1234", "pw-1234")

	token := mintToken(t, "u-new", "bob@example.com", false)
	verificationSent := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/signup":
			_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
		case "/api/auth/send-verification":
			if r.Header.Get("Authorization") != "Bearer "+token {
				t.Fatalf("send-verification without bearer token")
			}
			verificationSent = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	out := withStdoutCapture(t, func() {
		if err := (registerCmd{}).Run(context.Background(), cfg, []string{"bob@example.com", "Bob"}); err != nil {
			t.Fatalf("register should succeed: %v", err)
		}
	})
	if !strings.Contains(out, "verify-email") {
		t.Fatalf("verify-email hint expected, got: %s", out)
	}
	if !verificationSent {
		t.Fatalf("verification email not requested")
	}
	// pending-токен сохранён для последующего verify-email
	b, err := os.ReadFile(os.Getenv("TOKEN_FILE"))
	if err != nil || string(b) != token {
		t.Fatalf("pending token not saved: %v", err)
	}

	// 409 Conflict → понятная ошибка
	ts409 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer ts409.Close()
	stubSecrets(t, "pw-1234", "pw-1234")
	if err := (registerCmd{}).Run(context.Background(), &config.Config{ServerURL: ts409.URL}, []string{"bob@example.com"}); err == nil {
		t.Fatalf("expected conflict error")
	}

	// несовпадение паролей
	stubSecrets(t, "pw-1", "pw-2")
	if err := (registerCmd{}).Run(context.Background(), cfg, []string{"bob@example.com"}); err == nil {
		t.Fatalf("expected password mismatch error")
	}

	// недостаточно аргументов → ErrUsage
	if err := (registerCmd{}).Run(context.Background(), cfg, []string{}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

// --- login tests ---
func TestLogin_Run_SuccessAndErrors(t *testing.T) {
	withTempConfig(t)

	verified := mintToken(t, "u1", "alice@example.com", true)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signin" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": verified})
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	stubSecrets(t, "secret")
	out := withStdoutCapture(t, func() {
		if err := (loginCmd{}).Run(context.Background(), cfg, []string{"alice@example.com"}); err != nil {
			t.Fatalf("login should succeed: %v", err)
		}
	})
	if !strings.Contains(out, "alice@example.com") {
		t.Fatalf("login output should name the user, got: %s", out)
	}
	b, err := os.ReadFile(os.Getenv("TOKEN_FILE"))
	if err != nil || string(b) != verified {
		t.Fatalf("token not saved: %v", err)
	}

	// неподтверждённый email отклоняется, токен не перезаписывается
	_ = os.Remove(os.Getenv("TOKEN_FILE"))
	unverified := mintToken(t, "u1", "alice@example.com", false)
	tsUnv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": unverified})
	}))
	defer tsUnv.Close()
	stubSecrets(t, "secret")
	if err := (loginCmd{}).Run(context.Background(), &config.Config{ServerURL: tsUnv.URL}, []string{"alice@example.com"}); err == nil {
		t.Fatalf("unverified login must fail")
	}
	if _, err := os.Stat(os.Getenv("TOKEN_FILE")); !os.IsNotExist(err) {
		t.Fatalf("token must not be saved for unverified login")
	}

	// 401 Unauthorized
	ts401 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts401.Close()
	stubSecrets(t, "bad")
	err = (loginCmd{}).Run(context.Background(), &config.Config{ServerURL: ts401.URL}, []string{"alice@example.com"})
	if err == nil || !strings.Contains(err.Error(), "invalid email or password") {
		t.Fatalf("expected credential error, got %v", err)
	}

	// недостаточно аргументов → ErrUsage
	if err := (loginCmd{}).Run(context.Background(), cfg, []string{}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestLogout_Run(t *testing.T) {
	withTempConfig(t)
	if err := os.WriteFile(os.Getenv("TOKEN_FILE"), []byte("tok"), 0o600); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if err := (logoutCmd{}).Run(context.Background(), &config.Config{}, nil); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := os.Stat(os.Getenv("TOKEN_FILE")); !os.IsNotExist(err) {
		t.Fatalf("token file must be removed")
	}
	// повторный logout не падает
	if err := (logoutCmd{}).Run(context.Background(), &config.Config{}, nil); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
}

func TestResetPassword_Run(t *testing.T) {
	withTempConfig(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/lookup":
			exists := r.URL.Query().Get("email") == "known@example.com"
			fmt.Fprintf(w, `{"exists":%t}`, exists)
		case "/api/auth/password-reset":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	if err := (resetPasswordCmd{}).Run(context.Background(), cfg, []string{"known@example.com"}); err != nil {
		t.Fatalf("reset for known email failed: %v", err)
	}

	err := (resetPasswordCmd{}).Run(context.Background(), cfg, []string{"ghost@example.com"})
	if err == nil || err.Error() != "No account found with this email address" {
		t.Fatalf("expected no-account error, got %v", err)
	}
}

// Путь из -token-file / cfg.TokenFile должен использоваться напрямую,
// без оглядки на TOKEN_FILE и каталог конфигурации.
func TestLogin_Run_TokenFileFlagHonored(t *testing.T) {
	withTempConfig(t)
	t.Setenv("TOKEN_FILE", "") // только cfg.TokenFile

	verified := mintToken(t, "u1", "alice@example.com", true)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": verified})
	}))
	defer ts.Close()

	custom := filepath.Join(t.TempDir(), "pl_token")
	cfg := &config.Config{ServerURL: ts.URL, TokenFile: custom}
	stubSecrets(t, "secret")
	_ = withStdoutCapture(t, func() {
		if err := (loginCmd{}).Run(context.Background(), cfg, []string{"alice@example.com"}); err != nil {
			t.Fatalf("login should succeed: %v", err)
		}
	})
	b, err := os.ReadFile(custom)
	if err != nil || string(b) != verified {
		t.Fatalf("token must be saved to cfg.TokenFile %q: %v", custom, err)
	}

	// logout чистит тот же файл
	_ = withStdoutCapture(t, func() {
		if err := (logoutCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("logout: %v", err)
		}
	})
	if _, err := os.Stat(custom); !os.IsNotExist(err) {
		t.Fatalf("logout must remove cfg.TokenFile")
	}
}
