package events

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/dagjobs/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SocketIOConfig describes the Socket.IO endpoint notifications are published to.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	Event              string
	RunID              string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// SocketIO publishes every notification as one Socket.IO event whose payload
// carries the run id, the job id and the notification type.
type SocketIO struct {
	runID string
	event string
	emit  func(event string, payload map[string]any)
	close func()
}

func newSocketIO(runID, event string, emit func(string, map[string]any), closeFn func()) *SocketIO {
	return &SocketIO{runID: runID, event: event, emit: emit, close: closeFn}
}

// DialSocketIO connects to the endpoint and waits for the connection to be
// acknowledged before returning.
func DialSocketIO(ctx context.Context, cfg SocketIOConfig) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", cfg.URL)
	logger.Debug("Connecting event publisher...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse events URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("events URL %q must be absolute", cfg.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	connectChan := make(chan error, 1)
	notify := func(err error) {
		select {
		case connectChan <- err:
		default:
		}
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Event publisher connected", "sid", io.Id())
		notify(nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		notify(err)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}

	emit := func(event string, payload map[string]any) {
		io.Emit(event, payload)
	}
	return newSocketIO(cfg.RunID, cfg.Event, emit, func() { io.Disconnect() }), nil
}

func (s *SocketIO) publish(kind string, jobID uint64, extra map[string]any) {
	payload := map[string]any{
		"run_id": s.runID,
		"job_id": jobID,
		"type":   kind,
	}
	for k, v := range extra {
		payload[k] = v
	}
	s.emit(s.event, payload)
}

func (s *SocketIO) JobLaunched(_ context.Context, jobID uint64) {
	s.publish("launched", jobID, nil)
}

func (s *SocketIO) JobGenerated(_ context.Context, jobID uint64, base int) {
	s.publish("generated", jobID, map[string]any{"value": base})
}

func (s *SocketIO) JobCompleted(_ context.Context, jobID uint64, result int) {
	s.publish("completed", jobID, map[string]any{"value": result})
}

func (s *SocketIO) JobFailed(_ context.Context, jobID uint64, err error) {
	s.publish("failed", jobID, map[string]any{"error": err.Error()})
}

// Close disconnects from the server.
func (s *SocketIO) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
