package notification

import (
	"strings"
	"testing"
)

func TestMessageBuilderBuildsEvent(t *testing.T) {
	msg, err := NewMessageBuilder("announcement", map[string]string{"id": "a1"}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if msg != `{"type":"announcement","payload":{"id":"a1"}}` {
		t.Fatalf("unexpected frame %s", msg)
	}
}

func TestMelodyServiceWithoutInstance(t *testing.T) {
	s := NewMelodyService(nil)
	if err := s.SendMessage("x"); err == nil || !strings.Contains(err.Error(), "nil") {
		t.Fatalf("expected nil melody error, got %v", err)
	}
	if err := s.SendToUser("u1", "x"); err == nil {
		t.Fatalf("expected error for nil melody")
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_ = r.SendMessage("all")
	_ = r.SendToUser("u1", "one")
	if len(r.Broadcasts) != 1 || len(r.Direct["u1"]) != 1 {
		t.Fatalf("unexpected recorder state %+v", r)
	}
}
