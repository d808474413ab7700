package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestReadEvents(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNames []string
		wantData  []string
	}{
		{
			name:      "single event",
			input:     "event: connected\ndata: {\"admin_id\":1}\n\n",
			wantNames: []string{"connected"},
			wantData:  []string{`{"admin_id":1}`},
		},
		{
			name: "multiple events",
			input: "event: notifications\ndata: {\"unread_count\":2}\n\n" +
				"event: heartbeat\ndata: {\"timestamp\":123}\n\n",
			wantNames: []string{"notifications", "heartbeat"},
			wantData:  []string{`{"unread_count":2}`, `{"timestamp":123}`},
		},
		{
			name:      "comment lines skipped",
			input:     ": keep-alive\n\nevent: heartbeat\ndata: {}\n\n",
			wantNames: []string{"heartbeat"},
			wantData:  []string{"{}"},
		},
		{
			name:      "multi-line data joined",
			input:     "event: notifications\ndata: [1,\ndata: 2]\n\n",
			wantNames: []string{"notifications"},
			wantData:  []string{"[1,\n2]"},
		},
		{
			name:      "event without trailing blank line still flushes",
			input:     "event: error\ndata: {\"error\":\"boom\"}\n",
			wantNames: []string{"error"},
			wantData:  []string{`{"error":"boom"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []Event
			err := readEvents(strings.NewReader(tt.input), func(ev Event) error {
				events = append(events, ev)
				return nil
			})
			if err != nil {
				t.Fatalf("readEvents() error = %v", err)
			}

			if len(events) != len(tt.wantNames) {
				t.Fatalf("got %d events, want %d", len(events), len(tt.wantNames))
			}
			for i, ev := range events {
				if ev.Name != tt.wantNames[i] {
					t.Errorf("event %d name = %q, want %q", i, ev.Name, tt.wantNames[i])
				}
				if string(ev.Data) != tt.wantData[i] {
					t.Errorf("event %d data = %q, want %q", i, string(ev.Data), tt.wantData[i])
				}
			}
		})
	}
}

func TestReadEvents_HandlerErrorStops(t *testing.T) {
	input := "event: a\ndata: {}\n\nevent: b\ndata: {}\n\n"

	seen := 0
	err := readEvents(strings.NewReader(input), func(ev Event) error {
		seen++
		return context.Canceled
	})
	if err == nil {
		t.Fatal("readEvents() should propagate handler errors")
	}
	if seen != 1 {
		t.Errorf("handler ran %d times after error, want 1", seen)
	}
}

func TestSubscribeNotifications_DispatchesAndStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Errorf("Accept header = %q, want text/event-stream", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("event: connected\ndata: {\"admin_id\":1}\n\n"))
		w.Write([]byte("event: notifications\ndata: {\"unread_count\":3}\n\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("test-token"))

	var names []string
	err := c.SubscribeNotifications(context.Background(), func(ev Event) error {
		names = append(names, ev.Name)
		if ev.Name == "notifications" {
			return context.Canceled // stop after the payload we wanted
		}
		return nil
	})
	if !isHandlerStop(err) {
		t.Fatalf("SubscribeNotifications() error = %v, want handler stop", err)
	}

	if len(names) != 2 || names[0] != "connected" || names[1] != "notifications" {
		t.Errorf("events = %v, want [connected notifications]", names)
	}
}

func TestSubscribeNotifications_ContextCancelStopsRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := c.SubscribeNotifications(ctx, func(ev Event) error { return nil })
	if err == nil {
		t.Fatal("SubscribeNotifications() should return when the context ends")
	}
	// One failed attempt; the 5s backoff outlives the context.
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}
