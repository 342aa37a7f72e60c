package ipc

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSendReachesHandler(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "reva.sock")

	got := make(chan ControlMessage, 1)
	if err := StartServer(sock, func(msg ControlMessage) { got <- msg }); err != nil {
		t.Fatalf("start server: %v", err)
	}

	want := ControlMessage{Cmd: "say", Path: "/tmp/sample.mp3"}
	if err := Send(sock, want); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case msg := <-got:
		if msg != want {
			t.Errorf("received %+v, want %+v", msg, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never received the message")
	}
}

func TestSendWithoutServerFails(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "absent.sock")

	if err := Send(sock, ControlMessage{Cmd: "call"}); err == nil {
		t.Fatal("expected an error when no daemon is listening")
	}
}

func TestStartServerReplacesStaleSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "reva.sock")

	if err := StartServer(sock, func(ControlMessage) {}); err != nil {
		t.Fatalf("first start: %v", err)
	}

	// A daemon restart must be able to rebind the same path.
	got := make(chan ControlMessage, 1)
	if err := StartServer(sock, func(msg ControlMessage) { got <- msg }); err != nil {
		t.Fatalf("restart: %v", err)
	}

	if err := Send(sock, ControlMessage{Cmd: "hangup"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case msg := <-got:
		if msg.Cmd != "hangup" {
			t.Errorf("Cmd = %q", msg.Cmd)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("restarted server never received the message")
	}
}
