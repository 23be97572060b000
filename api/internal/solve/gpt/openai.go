package gpt

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// KeyFunc returns the current API key. It is called on every request so that
// credential changes take effect without a restart.
type KeyFunc func() string

type Engine struct {
	Key     KeyFunc
	Model   string
	BaseURL string
	httpc   *http.Client
}

func New(key KeyFunc, model, baseURL string) *Engine {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second, // TCP connect
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		// vision requests can take a while before the first byte
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}

	return &Engine{
		Key:     key,
		Model:   model,
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		// the overall deadline comes from the request context
		httpc: &http.Client{
			Timeout:   0,
			Transport: tr,
		},
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for custom timeouts or tracing).
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

// client is built per call: the key is read lazily so a missing credential is a
// clean per-request error instead of a startup crash.
func (e *Engine) client() (*openai.Client, error) {
	var key string
	if e.Key != nil {
		key = strings.TrimSpace(e.Key())
	}
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}
	cfg := openai.DefaultConfig(key)
	if e.BaseURL != "" {
		cfg.BaseURL = e.BaseURL
	}
	cfg.HTTPClient = e.httpc
	return openai.NewClientWithConfig(cfg), nil
}
