package sse

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan string) (string, bool) {
	t.Helper()
	select {
	case msg, ok := <-ch:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return "", false
	}
}

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("run1")
	defer cancel()

	h.Publish("run1", "hello")
	if msg, ok := recv(t, ch); !ok || msg != "hello" {
		t.Fatalf("got (%q, %v), want (hello, true)", msg, ok)
	}

	// чужой id не доставляется
	h.Publish("run2", "other")
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnsubscribe(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("run1")
	cancel()

	h.Publish("run1", "after cancel")
	select {
	case msg, ok := <-ch:
		if ok {
			t.Fatalf("unexpected message %q after unsubscribe", msg)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub()
	ch, _ := h.Subscribe("run1")

	// буфер дочитывается и после Close
	h.Publish("run1", "last")
	h.Close("run1")

	if msg, ok := recv(t, ch); !ok || msg != "last" {
		t.Fatalf("got (%q, %v), want (last, true)", msg, ok)
	}
	if _, ok := recv(t, ch); ok {
		t.Fatal("channel still open after Close")
	}

	// повторная подписка после Close живёт отдельно
	ch2, cancel := h.Subscribe("run1")
	defer cancel()
	h.Publish("run1", "again")
	if msg, ok := recv(t, ch2); !ok || msg != "again" {
		t.Fatalf("got (%q, %v), want (again, true)", msg, ok)
	}
}
