package infoclinica

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/143.0.0.0 Safari/537.36 Edg/143.0.0.0"

var tracer = otel.Tracer("smc.clinicbot.integrations.infoclinica")

// Options параметры подключения к МИС
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Cookies   string // сырая строка Cookie для анонимных запросов
	UserAgent string
}

// Result нормализованный ответ МИС.
// JSON == nil, если тело не удалось разобрать как JSON.
type Result struct {
	StatusCode int
	Text       string
	JSON       interface{}
}

// OK статус 2xx
func (r *Result) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Client HTTP-клиент МИС Инфоклиника.
// Все запросы идут через один общий transport с пулом соединений.
type Client struct {
	baseURL   string
	timeout   time.Duration
	cookies   string
	userAgent string

	transport http.RoundTripper
	anon      *http.Client
	metrics   MetricsCollector
	now       func() time.Time
}

// NewTransport transport с пулом keep-alive соединений для клиентов МИС
func NewTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.IdleConnTimeout = 30 * time.Second
	return t
}

// NewClient создаёт клиент. transport может быть nil (будет создан свой пул),
// metrics может быть nil.
func NewClient(opts Options, transport http.RoundTripper, metrics MetricsCollector) *Client {
	if transport == nil {
		transport = NewTransport()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		timeout:   opts.Timeout,
		cookies:   strings.TrimSpace(opts.Cookies),
		userAgent: opts.UserAgent,
		transport: transport,
		anon: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		metrics: metrics,
		now:     time.Now,
	}
}

type request struct {
	endpoint string // короткое имя для метрик и трейсов
	method   string
	path     string
	query    url.Values
	body     interface{}
	headers  map[string]string
}

// cacheBuster значение параметра "_" (unix ms), как у веб-клиента МИС
func (c *Client) cacheBuster() string {
	return strconv.FormatInt(c.now().UnixMilli(), 10)
}

func (c *Client) do(ctx context.Context, hc *http.Client, r request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "infoclinica."+r.endpoint, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", r.method),
		attribute.String("http.route", r.path),
	)

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - marshal body: %v", ErrInternal, r.endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - create request: %v", ErrInternal, r.endpoint, err)
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL+"/sdk")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Wr2-Apirequest", "_")
	req.Header.Set("X-Integration-Type", "PORTAL-WR2")
	if hc == c.anon && c.cookies != "" {
		req.Header.Set("Cookie", c.cookies)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.observe(r.endpoint, 0, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, classifyTransportError(r.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.observe(r.endpoint, resp.StatusCode, start)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if err != nil {
		span.RecordError(err)
		return nil, classifyTransportError(r.endpoint, err)
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Text:       string(raw),
		JSON:       decodeJSON(raw),
	}
	if !result.OK() {
		span.SetStatus(codes.Error, resp.Status)
	}

	return result, nil
}

func (c *Client) observe(endpoint string, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveClinicRequest(endpoint, status, time.Since(start).Seconds())
}

// classifyTransportError таймаут -> ErrTimeout, остальное -> ErrUnavailable
func classifyTransportError(endpoint string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, endpoint, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, endpoint, err)
}

func decodeJSON(raw []byte) interface{} {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}
