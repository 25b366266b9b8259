package infoclinica

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

const playSessionCookie = "PLAY_SESSION"

// LoggedInUser ответ GET /logged-in
type LoggedInUser struct {
	Authenticated bool
	ID            string // pcode пациента
	FullName      string
	Email         string
	Phone         string
	CheckToken    string
}

// AuthSession авторизованная сессия пациента: отдельный cookie jar
// поверх общего transport клиента
type AuthSession struct {
	http *http.Client
	User LoggedInUser
}

type loginPayload struct {
	Accept            bool   `json:"accept"`
	Code              string `json:"code"`
	FormKey           string `json:"formKey"`
	RecaptchaResponse string `json:"g-recaptcha-response"`
	Password          string `json:"password"`
	Username          string `json:"username"`
}

// Login выполняет вход в личный кабинет МИС:
// GET / (PLAY_SESSION) -> GET /logged-in -> POST /login -> GET /logged-in
func (c *Client) Login(ctx context.Context, username, password string) (*AuthSession, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("%w: Login - create cookie jar: %v", ErrInternal, err)
	}
	hc := &http.Client{
		Transport: c.transport,
		Jar:       jar,
		Timeout:   c.timeout,
	}

	res, err := c.do(ctx, hc, request{endpoint: "login_bootstrap", method: http.MethodGet, path: "/"})
	if err != nil {
		return nil, err
	}
	if !res.OK() || !c.hasCookie(jar, playSessionCookie) {
		return nil, fmt.Errorf("%w: status %d", ErrSessionBootstrap, res.StatusCode)
	}

	user, err := c.loggedIn(ctx, hc, c.baseURL+"/")
	if err != nil {
		return nil, err
	}
	if user.Authenticated {
		return &AuthSession{http: hc, User: user}, nil
	}

	res, err = c.do(ctx, hc, request{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/login",
		body: loginPayload{
			FormKey:  "pcode",
			Password: password,
			Username: username,
		},
		headers: map[string]string{"Referer": c.baseURL + "/login"},
	})
	if err != nil {
		return nil, err
	}
	// 303 приходит при успешном входе, если редирект не был выполнен
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusSeeOther {
		return nil, fmt.Errorf("%w: HTTP %d", ErrAuthFailed, res.StatusCode)
	}
	if msg, failed := loginRejected(res.JSON); failed {
		return nil, fmt.Errorf("%w: %s", ErrAuthFailed, msg)
	}

	user, err = c.loggedIn(ctx, hc, c.baseURL+"/login")
	if err != nil {
		return nil, err
	}
	if !user.Authenticated {
		return nil, fmt.Errorf("%w: not authenticated after login", ErrAuthFailed)
	}

	return &AuthSession{http: hc, User: user}, nil
}

func (c *Client) loggedIn(ctx context.Context, hc *http.Client, referer string) (LoggedInUser, error) {
	res, err := c.do(ctx, hc, request{
		endpoint: "logged_in",
		method:   http.MethodGet,
		path:     "/logged-in",
		headers:  map[string]string{"Referer": referer},
	})
	if err != nil {
		return LoggedInUser{}, err
	}
	if !res.OK() {
		return LoggedInUser{}, nil
	}
	return ParseLoggedIn(res.JSON), nil
}

func (c *Client) hasCookie(jar http.CookieJar, name string) bool {
	u, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return false
	}
	for _, cookie := range jar.Cookies(u) {
		if cookie.Name == name {
			return true
		}
	}
	return false
}

// loginRejected success=false вместе с error/message означает отказ
func loginRejected(v interface{}) (string, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	if success, ok := m["success"].(bool); !ok || success {
		return "", false
	}
	msg := firstString(m, "error", "message")
	return msg, msg != ""
}
