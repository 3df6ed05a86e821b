package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"encoding/json"
)

// IdentityClient — клиент identity-границы (hosted auth). Методы, требующие
// аутентификации, используют Token, выданный SignUp/SignIn/Reload.
type IdentityClient struct {
	BaseURL string
	Token   string
}

func NewIdentityClient(baseURL string) *IdentityClient {
	return &IdentityClient{BaseURL: strings.TrimRight(baseURL, "/")}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// SignUp создаёт учётную запись и возвращает ID-токен нового пользователя
// (email ещё не подтверждён).
func (c *IdentityClient) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	resp, body, err := PostJSON(ctx, c.BaseURL+"/api/auth/signup", credentialsRequest{Email: email, Password: password, DisplayName: displayName}, "")
	if err != nil {
		return "", err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusConflict:
		return "", ErrEmailTaken
	default:
		return "", fmt.Errorf("signup: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("signup: decode: %w", err)
	}
	c.Token = tr.Token
	return tr.Token, nil
}

// SignIn обменивает email+пароль на ID-токен.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (string, error) {
	resp, body, err := PostJSON(ctx, c.BaseURL+"/api/auth/signin", credentialsRequest{Email: email, Password: password}, "")
	if err != nil {
		return "", err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return "", ErrAuth
	case http.StatusNotFound:
		return "", ErrUserNotFound
	default:
		return "", fmt.Errorf("signin: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("signin: decode: %w", err)
	}
	c.Token = tr.Token
	return tr.Token, nil
}

// Reauthenticate повторно подтверждает пароль текущего пользователя.
// Возвращает ErrAuth при неверном пароле.
func (c *IdentityClient) Reauthenticate(ctx context.Context, password string) error {
	resp, body, err := PostJSON(ctx, c.BaseURL+"/api/auth/reauthenticate", credentialsRequest{Password: password}, c.Token)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrAuth
	default:
		return fmt.Errorf("reauthenticate: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// SendVerificationEmail запрашивает отправку письма подтверждения.
func (c *IdentityClient) SendVerificationEmail(ctx context.Context) error {
	resp, body, err := PostJSON(ctx, c.BaseURL+"/api/auth/send-verification", struct{}{}, c.Token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send-verification: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Reload запрашивает свежий ID-токен с актуальными claims (в том числе
// флагом подтверждения email) и обновляет Token клиента.
func (c *IdentityClient) Reload(ctx context.Context) (string, error) {
	resp, body, err := PostJSON(ctx, c.BaseURL+"/api/auth/reload", struct{}{}, c.Token)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrAuth
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reload: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("reload: decode: %w", err)
	}
	c.Token = tr.Token
	return tr.Token, nil
}

// SendPasswordReset запрашивает письмо для сброса пароля учётной записи.
func (c *IdentityClient) SendPasswordReset(ctx context.Context, email string) error {
	resp, body, err := PostJSON(ctx, c.BaseURL+"/api/auth/password-reset", credentialsRequest{Email: email}, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("password-reset: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// DeleteAccount удаляет текущую учётную запись (cleanup брошенных
// неподтверждённых регистраций).
func (c *IdentityClient) DeleteAccount(ctx context.Context) error {
	resp, body, err := DoJSON(ctx, http.MethodDelete, c.BaseURL+"/api/auth/account", nil, c.Token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete account: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// LookupByEmail сообщает, существует ли учётная запись с таким email.
// Используется, чтобы не отправлять сброс пароля на незарегистрированный адрес.
func (c *IdentityClient) LookupByEmail(ctx context.Context, email string) (bool, error) {
	u := c.BaseURL + "/api/auth/lookup?email=" + url.QueryEscape(email)
	resp, body, err := DoJSON(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("lookup: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var lr struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(body, &lr); err != nil {
		return false, fmt.Errorf("lookup: decode: %w", err)
	}
	return lr.Exists, nil
}
