package handlers_test

import (
	"PassLocker/internal/config"
	"PassLocker/internal/handlers"
	"PassLocker/internal/middleware"
	"PassLocker/internal/repo"
	"PassLocker/internal/service"
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// newTestServer поднимает полный стек эмулятора на temp-базе
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repo.InitDB(filepath.Join(t.TempDir(), "emulator.db"))
	require.NoError(t, err)

	userService := service.NewUserService(repo.NewUserRepository(db), testSecret)
	lockerRepo := repo.NewLockerRepository(db)
	lockerService := service.NewLockerService(lockerRepo, lockerRepo)

	cfg := &config.Config{AuthSecret: testSecret}
	h := handlers.NewHandler(userService, lockerService, zap.NewNop().Sugar(), cfg)
	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, payload any, token string) (*http.Response, []byte) {
	t.Helper()
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		require.NoError(t, json.NewEncoder(body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

// signUp регистрирует пользователя и возвращает его токен и uid
func signUp(t *testing.T, ts *httptest.Server, email string) (token, uid string) {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup",
		map[string]string{"email": email, "password": "pw-123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var tr struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &tr))
	return tr.Token, tokenUID(t, tr.Token)
}

func tokenUID(t *testing.T, token string) string {
	t.Helper()
	claims := &middleware.TokenClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	return claims.Subject
}

func tokenVerified(t *testing.T, token string) bool {
	t.Helper()
	claims := &middleware.TokenClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	return claims.EmailVerified
}

func TestIdentity_SignUpSignInFlow(t *testing.T) {
	ts := newTestServer(t)

	token, uid := signUp(t, ts, "alice@example.com")
	assert.NotEmpty(t, uid)
	assert.False(t, tokenVerified(t, token), "fresh signup must be unverified")

	// повторная регистрация того же email — 409
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signup",
		map[string]string{"email": "alice@example.com", "password": "other"}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// вход с неверным паролем — 401
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/signin",
		map[string]string{"email": "alice@example.com", "password": "bad"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// вход незнакомого email — 404
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/signin",
		map[string]string{"email": "ghost@example.com", "password": "x"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// корректный вход — 200 и токен с last_sign_in
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/signin",
		map[string]string{"email": "alice@example.com", "password": "pw-123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tr struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &tr))
	claims := &middleware.TokenClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tr.Token, claims)
	require.NoError(t, err)
	assert.NotZero(t, claims.LastSignIn)
}

func TestIdentity_VerifyReloadAndReauthenticate(t *testing.T) {
	ts := newTestServer(t)
	token, _ := signUp(t, ts, "bob@example.com")

	// reload до подтверждения: email_verified=false
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/auth/reload", struct{}{}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tr struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.False(t, tokenVerified(t, tr.Token))

	// dev-подтверждение и повторный reload
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/emulator/verify",
		map[string]string{"email": "bob@example.com"}, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/auth/reload", struct{}{}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &tr))
	assert.True(t, tokenVerified(t, tr.Token))

	// reauthenticate: верный и неверный пароль
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/reauthenticate",
		map[string]string{"password": "pw-123"}, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/reauthenticate",
		map[string]string{"password": "wrong"}, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// без токена — 401
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/auth/reauthenticate",
		map[string]string{"password": "pw-123"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIdentity_LookupAndDelete(t *testing.T) {
	ts := newTestServer(t)
	token, _ := signUp(t, ts, "carol@example.com")

	var lr struct {
		Exists bool `json:"exists"`
	}
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/auth/lookup?email=carol@example.com", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &lr))
	assert.True(t, lr.Exists)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/auth/lookup?email=ghost@example.com", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &lr))
	assert.False(t, lr.Exists)

	// удаление аккаунта: последующий lookup его не находит
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/auth/account", nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/auth/lookup?email=carol@example.com", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &lr))
	assert.False(t, lr.Exists)
}

func TestLockers_CRUDAndOwnership(t *testing.T) {
	ts := newTestServer(t)
	token, uid := signUp(t, ts, "dave@example.com")
	base := fmt.Sprintf("%s/api/users/%s", ts.URL, uid)

	// без токена — 401; чужой uid — 403
	resp, _ := doJSON(t, http.MethodGet, base+"/lockers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/users/other-uid/lockers", nil, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// создание
	resp, body := doJSON(t, http.MethodPost, base+"/lockers",
		map[string]string{"name": "Zeta", "username": "dave", "password": "ct-1"}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.NotEmpty(t, created.ID)

	_, body = doJSON(t, http.MethodPost, base+"/lockers",
		map[string]string{"name": "Apple", "password": "ct-2"}, token)
	var second struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &second))

	// список упорядочен по имени
	resp, body = doJSON(t, http.MethodGet, base+"/lockers", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Apple", list[0].Name)
	assert.Equal(t, "Zeta", list[1].Name)

	// частичное обновление: имя остаётся, username меняется
	resp, _ = doJSON(t, http.MethodPatch, base+"/lockers/"+created.ID,
		map[string]string{"username": "new-dave"}, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, base+"/lockers", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var full []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(body, &full))
	for _, l := range full {
		if l.ID == created.ID {
			assert.Equal(t, "Zeta", l.Name)
			assert.Equal(t, "new-dave", l.Username)
			assert.Equal(t, "ct-1", l.Password)
		}
	}

	// обновление несуществующего — 404
	resp, _ = doJSON(t, http.MethodPatch, base+"/lockers/no-such",
		map[string]string{"username": "x"}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// удаление
	resp, _ = doJSON(t, http.MethodDelete, base+"/lockers/"+second.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, base+"/lockers/"+second.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPin_GetPut(t *testing.T) {
	ts := newTestServer(t)
	token, uid := signUp(t, ts, "erin@example.com")
	pinURL := fmt.Sprintf("%s/api/users/%s/security/pin", ts.URL, uid)

	// до установки — 404
	resp, _ := doJSON(t, http.MethodGet, pinURL, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, pinURL, map[string]string{"value": "ct-pin"}, token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, pinURL, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc struct {
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, "ct-pin", doc.Value)
}

func TestWatch_StreamsSnapshots(t *testing.T) {
	ts := newTestServer(t)
	token, uid := signUp(t, ts, "frank@example.com")
	base := fmt.Sprintf("%s/api/users/%s", ts.URL, uid)

	req, err := http.NewRequest(http.MethodGet, base+"/lockers/watch", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	scanner := bufio.NewScanner(resp.Body)
	readSnapshot := func() []struct {
		Name string `json:"name"`
	} {
		type line = []struct {
			Name string `json:"name"`
		}
		ok := make(chan line, 1)
		go func() {
			if scanner.Scan() {
				var snap line
				_ = json.Unmarshal(scanner.Bytes(), &snap)
				ok <- snap
			}
		}()
		select {
		case snap := <-ok:
			return snap
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for watch frame")
			return nil
		}
	}

	// первый кадр — пустой снимок
	assert.Empty(t, readSnapshot())

	// мутация порождает новый кадр
	createResp, _ := doJSON(t, http.MethodPost, base+"/lockers",
		map[string]string{"name": "Mail", "password": "ct"}, token)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	snap := readSnapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "Mail", snap[0].Name)
}
