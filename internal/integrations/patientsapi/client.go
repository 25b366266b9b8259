package patientsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client клиент API регистрации пациентов МИС.
// Токен запрашивается через POST /token и переиспользуется до истечения tokenTTL.
type Client struct {
	baseURL    string
	login      string
	password   string
	tokenTTL   time.Duration
	httpClient *http.Client
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient создаёт клиент. transport общий с клиентом МИС (может быть nil).
func NewClient(baseURL, login, password string, timeout, tokenTTL time.Duration, transport http.RoundTripper) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		login:    login,
		password: password,
		tokenTTL: tokenTTL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		now: time.Now,
	}
}

// Token возвращает действующий access_token, при необходимости запрашивая новый
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type":    {""},
		"username":      {c.login},
		"password":      {c.password},
		"scope":         {""},
		"client_id":     {""},
		"client_secret": {""},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: Token - create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: Token - execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrTokenRequest, resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: Token - decode response: %v", ErrTokenRequest, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: access_token is empty", ErrTokenRequest)
	}

	c.token = tr.AccessToken
	c.expiresAt = c.now().Add(c.tokenTTL)
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// CreatePatient регистрирует пациента в МИС и возвращает его pcode
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (string, error) {
	status, body, err := c.doJSON(ctx, http.MethodPost, "/createPatients/", req)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("%w: CreatePatient - status %d: %s", ErrRejected, status, string(body))
	}

	pcode := extractPCode(body)
	if pcode == "" {
		return "", fmt.Errorf("%w: CreatePatient - pcode not found in response", ErrInvalidResponse)
	}
	return pcode, nil
}

// UpdateCredentials меняет логин и пароль личного кабинета пациента
func (c *Client) UpdateCredentials(ctx context.Context, pcode string, req UpdateCredentialsRequest) error {
	path := "/updatePatients/" + url.PathEscape(pcode) + "/credentials"

	status, body, err := c.doJSON(ctx, http.MethodPut, path, req)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: UpdateCredentials - status %d: %s", ErrRejected, status, string(body))
	}
	return nil
}

// doJSON запрос с Bearer-токеном; при 401 токен обновляется и запрос повторяется один раз
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: marshal request: %v", ErrInternal, err)
	}

	for attempt := 0; ; attempt++ {
		token, err := c.Token(ctx)
		if err != nil {
			return 0, nil, err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(bodyBytes))
		if err != nil {
			return 0, nil, fmt.Errorf("%w: create request: %v", ErrInternal, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return 0, nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, readErr)
		}

		if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
			c.invalidateToken()
			continue
		}
		return resp.StatusCode, body, nil
	}
}

// extractPCode pcode -> data.pcode -> PCODE -> id
func extractPCode(body []byte) string {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return ""
	}

	if s := scalar(m["pcode"]); s != "" {
		return s
	}
	if data, ok := m["data"].(map[string]interface{}); ok {
		if s := scalar(data["pcode"]); s != "" {
			return s
		}
	}
	if s := scalar(m["PCODE"]); s != "" {
		return s
	}
	return scalar(m["id"])
}

func scalar(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
