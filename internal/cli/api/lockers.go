package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"PassLocker/internal/cli/model"
)

// LockerClient — клиент document-границы: per-user коллекция lockers и
// singleton-документ PIN. Все операции выполняются строго под uid владельца.
type LockerClient struct {
	BaseURL string
	Token   string
}

func NewLockerClient(baseURL, token string) *LockerClient {
	return &LockerClient{BaseURL: strings.TrimRight(baseURL, "/"), Token: token}
}

func (c *LockerClient) lockersURL(uid string) string {
	return c.BaseURL + "/api/users/" + uid + "/lockers"
}

// List возвращает текущий снимок коллекции, упорядоченный по имени.
func (c *LockerClient) List(ctx context.Context, uid string) ([]model.Locker, error) {
	resp, body, err := DoJSON(ctx, http.MethodGet, c.lockersURL(uid), nil, c.Token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list lockers: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var lockers []model.Locker
	if err := json.Unmarshal(body, &lockers); err != nil {
		return nil, fmt.Errorf("list lockers: decode: %w", err)
	}
	return lockers, nil
}

// Create добавляет документ; id назначает бэкенд.
func (c *LockerClient) Create(ctx context.Context, uid string, l model.Locker) (string, error) {
	resp, body, err := PostJSON(ctx, c.lockersURL(uid), l, c.Token)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create locker: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("create locker: decode: %w", err)
	}
	return created.ID, nil
}

// Update применяет частичное обновление к документу id.
func (c *LockerClient) Update(ctx context.Context, uid, id string, patch model.LockerPatch) error {
	resp, body, err := DoJSON(ctx, http.MethodPatch, c.lockersURL(uid)+"/"+id, patch, c.Token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update locker: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Delete удаляет документ. Идемпотентно: отсутствие id не считается ошибкой
// на стороне бэкенда, и вызывающий не должен полагаться на сигнал об этом.
func (c *LockerClient) Delete(ctx context.Context, uid, id string) error {
	resp, body, err := DoJSON(ctx, http.MethodDelete, c.lockersURL(uid)+"/"+id, nil, c.Token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete locker: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// GetPin читает singleton-документ PIN. exists=false, если PIN ещё не задан.
func (c *LockerClient) GetPin(ctx context.Context, uid string) (value string, exists bool, err error) {
	resp, body, err := DoJSON(ctx, http.MethodGet, c.BaseURL+"/api/users/"+uid+"/security/pin", nil, c.Token)
	if err != nil {
		return "", false, err
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return "", false, nil
	case http.StatusOK:
	default:
		return "", false, fmt.Errorf("get pin: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var doc struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", false, fmt.Errorf("get pin: decode: %w", err)
	}
	return doc.Value, true, nil
}

// PutPin создаёт или заменяет PIN-документ (value — шифртекст).
func (c *LockerClient) PutPin(ctx context.Context, uid, value string) error {
	payload := struct {
		Value string `json:"value"`
	}{Value: value}
	resp, body, err := DoJSON(ctx, http.MethodPut, c.BaseURL+"/api/users/"+uid+"/security/pin", payload, c.Token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("put pin: server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Subscribe открывает live-подписку на коллекцию: поток полных снимков
// (ND-JSON, по снимку на строку), упорядоченных по имени. Каждый снимок
// передаётся в onUpdate целиком; потребитель замещает своё состояние.
// Ошибка потока сообщается в onError один раз и завершает чтение — авто-
// переподключения нет. Возвращённая функция отменяет подписку.
func (c *LockerClient) Subscribe(ctx context.Context, uid string, onUpdate func([]model.Locker), onError func(error)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lockersURL(uid)+"/watch", nil)
	if err != nil {
		cancel()
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("watch lockers: server status %d", resp.StatusCode)
	}

	go func() {
		defer resp.Body.Close()
		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 {
				continue
			}
			var snapshot []model.Locker
			if err := json.Unmarshal(line, &snapshot); err != nil {
				// битый кадр не роняет подписку
				if onError != nil {
					onError(fmt.Errorf("watch lockers: decode snapshot: %w", err))
				}
				continue
			}
			onUpdate(snapshot)
		}
		if err := sc.Err(); err != nil && !errors.Is(err, context.Canceled) && onError != nil {
			onError(fmt.Errorf("watch lockers: stream: %w", err))
		}
	}()

	return cancel, nil
}
