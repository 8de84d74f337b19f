package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Operation is a named query or mutation document.
type Operation struct {
	Name     string
	Document string
}

// Observer receives the outcome of every round trip. kind is empty on success.
type Observer interface {
	ObserveOperation(operation, kind string, elapsed time.Duration)
}

// Client sends operations to a GraphQL endpoint over HTTP POST.
type Client struct {
	endpoint   string
	httpClient *http.Client
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithObserver reports every round trip to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorMessage  `json:"errors"`
}

// Do executes op with vars and decodes the data object into out (which may be
// nil). When the server returns errors alongside data, the data is still
// decoded and a *ServerError is returned.
func (c *Client) Do(ctx context.Context, op Operation, vars map[string]any, out any) error {
	start := time.Now()
	err := c.do(ctx, op, vars, out)
	if c.observer != nil {
		kind := ""
		if err != nil {
			kind = Kind(err)
		}
		c.observer.ObserveOperation(op.Name, kind, time.Since(start))
	}
	return err
}

func (c *Client) do(ctx context.Context, op Operation, vars map[string]any, out any) error {
	body, err := json.Marshal(request{Query: op.Document, OperationName: op.Name, Variables: vars})
	if err != nil {
		return fmt.Errorf("graphql %s: encode request: %w", op.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Operation: op.Name, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Operation: op.Name, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 10<<20))
	if err != nil {
		return &TransportError{Operation: op.Name, StatusCode: res.StatusCode, Err: err}
	}

	var gr response
	if err := json.Unmarshal(raw, &gr); err != nil {
		if res.StatusCode < 200 || res.StatusCode > 299 {
			return &TransportError{Operation: op.Name, StatusCode: res.StatusCode, Err: errors.New(http.StatusText(res.StatusCode))}
		}
		return &TransportError{Operation: op.Name, StatusCode: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(gr.Errors) == 0 && (res.StatusCode < 200 || res.StatusCode > 299) {
		return &TransportError{Operation: op.Name, StatusCode: res.StatusCode, Err: errors.New(http.StatusText(res.StatusCode))}
	}

	if out != nil && len(gr.Data) > 0 && !bytes.Equal(gr.Data, []byte("null")) {
		if err := json.Unmarshal(gr.Data, out); err != nil {
			return &TransportError{Operation: op.Name, StatusCode: res.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
		}
	}

	if len(gr.Errors) > 0 {
		return &ServerError{Operation: op.Name, StatusCode: res.StatusCode, Errors: gr.Errors}
	}
	return nil
}
