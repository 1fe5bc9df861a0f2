package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBroadcastEventNeverBlocks(t *testing.T) {
	hub := NewHub()

	// no Run loop draining; the buffer must absorb or drop everything
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			hub.BroadcastEvent("report_created", map[string]interface{}{"n": i})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("BroadcastEvent blocked with saturated hub")
	}
}

func TestBroadcastEventPayload(t *testing.T) {
	hub := NewHub()

	hub.BroadcastEvent("sos_triggered", map[string]interface{}{"alert_id": "abc"})

	select {
	case raw := <-hub.broadcast:
		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.Type != "sos_triggered" {
			t.Errorf("type = %q, want sos_triggered", event.Type)
		}
		if event.Data["alert_id"] != "abc" {
			t.Errorf("data = %v", event.Data)
		}
		if event.Timestamp == 0 {
			t.Error("timestamp not set")
		}
	default:
		t.Fatal("no event queued")
	}
}

func TestClientCountEmpty(t *testing.T) {
	if count := NewHub().ClientCount(); count != 0 {
		t.Errorf("ClientCount = %d, want 0", count)
	}
}
