// Package catalogclient is a typed HTTP client for the catalog API. Every
// failure it returns is an *apperror.Error.
package catalogclient

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

	"catalog/pkg/apperror"
)

const defaultTimeout = 30 * time.Second

// Client talks to one catalog API base URL, e.g. http://localhost:8080/api.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request and decodes a successful response into out. Error
// responses are turned into *apperror.Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.Newf(apperror.CodeInternal, "Unexpected response from %s %s", method, path).WithCause(err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.Newf(apperror.CodeAPIInvalidRequest, "Request body cannot be encoded").WithCause(err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apperror.Newf(apperror.CodeAPIInvalidRequest, "Invalid request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, responseError(resp.StatusCode, raw)
	}
	return raw, nil
}

func transportError(err error) *apperror.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperror.New(apperror.CodeAPITimeout).WithCause(err)
	}
	return apperror.New(apperror.CodeAPIServiceUnavailable).WithCause(err)
}

// responseError decodes the error envelope of a failed response, falling back
// to a generic code derived from the status.
func responseError(status int, raw []byte) *apperror.Error {
	var probe struct {
		Error *struct {
			Code *apperror.Code `json:"code"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &probe) == nil && probe.Error != nil && probe.Error.Code != nil {
		var env apperror.Envelope
		if json.Unmarshal(raw, &env) == nil {
			return apperror.FromEnvelope(env)
		}
	}

	var code apperror.Code
	switch {
	case status == http.StatusUnauthorized:
		code = apperror.CodeUnauthorized
	case status == http.StatusForbidden:
		code = apperror.CodeForbidden
	case status == http.StatusNotFound:
		code = apperror.CodeNotFound
	case status == http.StatusRequestTimeout:
		code = apperror.CodeAPITimeout
	case status == http.StatusConflict:
		code = apperror.CodeConflict
	case status == http.StatusTooManyRequests:
		code = apperror.CodeAPIRateLimitExceeded
	case status == http.StatusServiceUnavailable:
		code = apperror.CodeAPIServiceUnavailable
	case status < http.StatusInternalServerError:
		code = apperror.CodeBadRequest
	default:
		code = apperror.CodeInternal
	}
	return apperror.Newf(code, "Request failed with status %d", status).
		WithDetails(apperror.Details{StatusCode: status})
}

func listValues(p ListParams) url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "limit", p.Limit)
	setString(q, "search", p.Search)
	setString(q, "sort", p.Sort)
	setString(q, "order", p.Order)
	return q
}

func productValues(p ProductParams) url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "limit", p.Limit)
	setString(q, "search", p.Search)
	setString(q, "category", p.Category)
	if p.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	setString(q, "sortBy", p.SortBy)
	setString(q, "sortOrder", p.SortOrder)
	return q
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func idPath(prefix, id string) string {
	return fmt.Sprintf("%s/%s", prefix, url.PathEscape(id))
}
