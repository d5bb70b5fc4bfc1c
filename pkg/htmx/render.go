package htmx

import (
	"context"
	"io"
	"net/http"
	"strings"
)

// Renderable matches templ.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config collects response headers and out-of-band components for an htmx
// response.
type Config struct {
	OOBComponents []Renderable
	Retarget      string
	Reswap        SwapStrategy
	PushURL       string
	ReplaceURL    string
	Triggers      []string
	Refresh       bool
}

// RenderOption configures an htmx response.
type RenderOption func(*Config)

// NewConfig applies opts to an empty Config.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders writes the configured headers. It must run before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}
	h := w.Header()
	set := func(k, v string) {
		if v != "" {
			h.Set(k, v)
		}
	}
	set(HeaderHXRetarget, c.Retarget)
	set(HeaderHXReswap, string(c.Reswap))
	set(HeaderHXPushURL, c.PushURL)
	set(HeaderHXReplaceURL, c.ReplaceURL)
	set(HeaderHXTrigger, strings.Join(c.Triggers, ", "))
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// WithOOB appends components rendered after the main one. Each must carry
// an id and hx-swap-oob.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) { c.OOBComponents = append(c.OOBComponents, components...) }
}

// WithRetarget swaps into selector instead of the requesting element's target.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) { c.Retarget = selector }
}

// WithReswap overrides the swap strategy.
func WithReswap(s SwapStrategy) RenderOption {
	return func(c *Config) { c.Reswap = s }
}

// WithPushURL pushes url onto the browser history. "false" disables it.
func WithPushURL(url string) RenderOption {
	return func(c *Config) { c.PushURL = url }
}

// WithReplaceURL replaces the current location without a history entry.
func WithReplaceURL(url string) RenderOption {
	return func(c *Config) { c.ReplaceURL = url }
}

// WithTrigger fires client events once the response is received.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) { c.Triggers = append(c.Triggers, events...) }
}

// WithRefresh forces a full page reload.
func WithRefresh() RenderOption {
	return func(c *Config) { c.Refresh = true }
}
