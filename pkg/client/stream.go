package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Reconnect backoff bounds. The delay starts at the initial value and doubles
// after each failed attempt until the cap; a successful connect resets it.
const (
	initialReconnectDelay = 5 * time.Second
	maxReconnectDelay     = 60 * time.Second
)

// Event is one named event from the notification stream
type Event struct {
	Name string
	Data json.RawMessage
}

// EventHandler receives stream events. Returning an error stops the subscriber.
type EventHandler func(Event) error

// SubscribeNotifications opens the notification stream and dispatches events
// to fn until ctx is cancelled or fn returns an error. Dropped connections are
// retried with exponential backoff; every reconnect starts a fresh stream, so
// the server re-announces the full current alert set.
func (c *Client) SubscribeNotifications(ctx context.Context, fn EventHandler) error {
	delay := initialReconnectDelay

	for {
		err := c.streamOnce(ctx, fn, func() { delay = initialReconnectDelay })
		if isHandlerStop(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// A closed or failed stream, clean or not, means reconnect.

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}
	}
}

type handlerStop struct{ err error }

func (e *handlerStop) Error() string { return e.err.Error() }
func (e *handlerStop) Unwrap() error { return e.err }

func isHandlerStop(err error) bool {
	_, ok := err.(*handlerStop)
	return ok
}

// streamOnce runs one connection lifetime; onConnect fires after a 200
func (c *Client) streamOnce(ctx context.Context, fn EventHandler, onConnect func()) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/notifications/stream", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	c.authorize(req)

	// The stream outlives any sane request timeout, so use a dedicated
	// client with none; ctx still cancels it.
	hc := &http.Client{Transport: c.httpClient.Transport}

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "stream rejected"}
	}

	onConnect()

	if err := readEvents(resp.Body, func(ev Event) error {
		if err := fn(ev); err != nil {
			return &handlerStop{err: err}
		}
		return nil
	}); err != nil {
		if isHandlerStop(err) {
			return err
		}
		return fmt.Errorf("stream read: %w", err)
	}
	return nil
}

// readEvents parses text/event-stream framing: "event:" and "data:" lines
// accumulate until a blank line dispatches the event. Unknown fields and
// comment lines are skipped.
func readEvents(r io.Reader, fn func(Event) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var ev Event
	var data strings.Builder

	flush := func() error {
		if ev.Name == "" && data.Len() == 0 {
			return nil
		}
		ev.Data = json.RawMessage(data.String())
		err := fn(ev)
		ev = Event{}
		data.Reset()
		return err
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, "event:"):
			ev.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case strings.HasPrefix(line, ":"):
			// comment, keep-alive filler
		}
	}

	if err := flush(); err != nil {
		return err
	}
	return scanner.Err()
}
