package detran

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"vehicledebts/pkg/logger"
)

const defaultTimeout = 30 * time.Second

var ErrEmptyBaseURL = errors.New("detran: base url not configured")

// StatusError is returned when the webservice answers with a non-2xx status.
type StatusError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("detran %s: unexpected status %d: %s", e.Method, e.StatusCode, e.Body)
}

// Client talks to the Detran-SP vehicle webservice. Each method is exposed as
// GET {BaseURL}/{method}?license_plate=&renavam= returning a JSON object.
type Client struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *fasthttp.Client
	Logger     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: timeout,
		HTTPClient: &fasthttp.Client{
			Name:                "vehicledebts",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
		Logger: log,
	}
}

// Consult calls one webservice method and returns the decoded payload.
// Numbers are kept as json.Number.
func (c *Client) Consult(ctx context.Context, method, licensePlate, renavam string) (map[string]any, error) {
	if c.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()

	req.SetRequestURI(c.BaseURL + "/" + method)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	args := req.URI().QueryArgs()
	args.Add("license_plate", licensePlate)
	args.Add("renavam", renavam)

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- c.HTTPClient.DoDeadline(req, resp, c.deadline(ctx))
	}()

	// fasthttp does not watch ctx. On cancel the call is abandoned and its
	// request and response are released once it returns.
	select {
	case <-ctx.Done():
		go func() {
			<-done
			fasthttp.ReleaseRequest(req)
			fasthttp.ReleaseResponse(resp)
		}()
		return nil, ctx.Err()
	case err := <-done:
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("detran %s: %w", method, err)
		}
	}

	status := resp.StatusCode()
	c.Logger.Debug("detran query",
		"method", method,
		"status", status,
		"duration", time.Since(start).String(),
	)

	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return nil, &StatusError{
			Method:     method,
			StatusCode: status,
			Body:       truncate(string(resp.Body()), 256),
		}
	}

	body, err := decodeCharset(resp.Body(), string(resp.Header.ContentType()))
	if err != nil {
		return nil, fmt.Errorf("detran %s: %w", method, err)
	}

	payload, err := decodePayload(body)
	if err != nil {
		return nil, fmt.Errorf("detran %s: decode response: %w", method, err)
	}
	return payload, nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}

func decodePayload(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	var payload map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

// the webservice still answers some methods in Latin-1
func decodeCharset(body []byte, contentType string) ([]byte, error) {
	var enc encoding.Encoding
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "iso-8859-1"), strings.Contains(ct, "latin1"):
		enc = charmap.ISO8859_1
	case strings.Contains(ct, "windows-1252"):
		enc = charmap.Windows1252
	default:
		return body, nil
	}
	return enc.NewDecoder().Bytes(body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
