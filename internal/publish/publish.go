// Package publish pushes imported blocks to a socket.io server, the way an
// editor backend receives a paste from another process.
package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ErrTimeout is returned when the server does not connect or acknowledge in
// time.
var ErrTimeout = errors.New("publish timed out")

// Config configures a Publisher.
type Config struct {
	URL       string
	Path      string
	Namespace string
	// Event is emitted with the content as its only argument.
	Event string
	// AckEvent is awaited after emitting. The socket is only closed once it
	// arrives, so the emitted packet is never dropped by the disconnect.
	AckEvent string
	Timeout  time.Duration
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Publisher emits content to a socket.io namespace.
type Publisher struct {
	cfg     Config
	baseURL string
}

// New validates cfg and returns a Publisher. No connection is made until
// Publish is called.
func New(cfg Config) (*Publisher, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("publish URL %q must be absolute", cfg.URL)
	}
	if cfg.Event == "" {
		return nil, errors.New("publish event name must not be empty")
	}
	if cfg.AckEvent == "" {
		return nil, errors.New("publish ack event name must not be empty")
	}
	if cfg.Path == "" {
		cfg.Path = u.Path
	}
	if cfg.Path == "" {
		cfg.Path = "/socket.io/"
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Publisher{
		cfg:     cfg,
		baseURL: fmt.Sprintf("%s://%s", u.Scheme, u.Host),
	}, nil
}

type result struct {
	ack any
	err error
}

// Publish connects, emits content and waits for the acknowledgement event.
// It returns the first argument of the acknowledgement.
func (p *Publisher) Publish(ctx context.Context, content document.Content) (any, error) {
	logger := ctxlog.FromContext(ctx).With("url", p.baseURL, "namespace", p.cfg.Namespace, "event", p.cfg.Event)

	payload, err := toWire(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	opts.SetPath(p.cfg.Path)
	if p.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(p.baseURL, opts)
	io := manager.Socket(p.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	var connected atomic.Bool
	done := make(chan result, 1)
	finish := func(r result) {
		select {
		case done <- r:
		default:
		}
	}

	io.Once(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Info("Connected; emitting content.", "sid", io.Id(), "blocks", len(content))
		io.Emit(p.cfg.Event, payload)
	})

	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		finish(result{err: fmt.Errorf("socket.io connection failed: %w", err)})
	})

	io.Once(types.EventName(p.cfg.AckEvent), func(data ...any) {
		var ack any
		if len(data) > 0 {
			ack = data[0]
		}
		finish(result{ack: ack})
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if connected.Load() {
			return nil, fmt.Errorf("%w after %v waiting for event '%s'", ErrTimeout, p.cfg.Timeout, p.cfg.AckEvent)
		}
		return nil, fmt.Errorf("%w after %v waiting for connection", ErrTimeout, p.cfg.Timeout)
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		logger.Info("Content published.", "ack_event", p.cfg.AckEvent)
		return res.ack, nil
	}
}

// toWire converts content into plain maps and slices so the packet encoder
// sees the same shape as the JSON output.
func toWire(content document.Content) (any, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
