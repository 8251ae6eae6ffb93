// Package publish pushes plan reports to a socket.io endpoint, for
// dashboards that follow a batch of recordings as it is planned.
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

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/specialistvlad/flightgraph/internal/ctxlog"
	"github.com/specialistvlad/flightgraph/internal/report"
)

const (
	// DefaultEvent is emitted when Publisher.Event is empty.
	DefaultEvent = "flightgraph:plans"
	// DefaultTimeout applies when Publisher.Timeout is not positive.
	DefaultTimeout = 10 * time.Second
)

// ErrTimeout is returned when the server neither acknowledged nor failed
// within the Publisher's timeout.
var ErrTimeout = errors.New("publish timed out")

// Publisher emits report documents over socket.io.
type Publisher struct {
	// URL is the server address, path included, e.g.
	// http://localhost:3000/socket.io/.
	URL string

	// Namespace defaults to "/".
	Namespace string

	// Event carries the documents. Defaults to DefaultEvent.
	Event string

	// AckEvent, when set, is awaited after emitting.
	AckEvent string

	// Timeout bounds the whole exchange. Defaults to DefaultTimeout.
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Payload converts docs into the generic form the socket.io encoder
// serialises.
func Payload(docs []*report.Document) ([]any, error) {
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode documents: %w", err)
	}
	out := []any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to encode documents: %w", err)
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

// Publish connects, emits docs as a single event and, if AckEvent is set,
// waits for the server to answer.
func (p *Publisher) Publish(ctx context.Context, docs ...*report.Document) error {
	event := p.Event
	if event == "" {
		event = DefaultEvent
	}
	namespace := p.Namespace
	if namespace == "" {
		namespace = "/"
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := ctxlog.FromContext(ctx).With("url", p.URL, "event", event, "ack_event", p.AckEvent)

	parsed, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("failed to parse publish URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("failed to parse publish URL: %q has no scheme or host", p.URL)
	}
	payload, err := Payload(docs)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}
	var connected atomic.Bool

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	if p.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)
	defer func() {
		logger.Debug("Disconnecting publisher.")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Debug("Publisher connected.", "sid", io.Id())
		io.Emit(event, payload)
		logger.Info("Reports published.", "documents", len(docs))
		if p.AckEvent == "" {
			finish(nil)
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				finish(fmt.Errorf("failed to connect: %w", err))
				return
			}
		}
		finish(errors.New("failed to connect"))
	})
	if p.AckEvent != "" {
		io.On(types.EventName(p.AckEvent), func(...any) {
			logger.Debug("Publish acknowledged.")
			finish(nil)
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected.Load() {
			return fmt.Errorf("%w waiting for %q", ErrTimeout, p.AckEvent)
		}
		return fmt.Errorf("%w waiting for connection", ErrTimeout)
	case err := <-done:
		return err
	}
}
