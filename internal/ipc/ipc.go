// Package ipc is the unix-socket control channel between reva-ctl and
// the daemon.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// DefaultSocket is where the daemon listens unless told otherwise.
const DefaultSocket = "/tmp/reva.sock"

// ControlMessage is one command from reva-ctl. Path is set only for
// commands that reference an audio file.
type ControlMessage struct {
	Cmd  string `json:"cmd"`
	Path string `json:"path,omitempty"`
}

// StartServer listens on path and invokes handler for every decoded
// message. Accept loop runs in the background.
func StartServer(path string, handler func(ControlMessage)) error {
	os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				continue
			}
			go handleConn(conn, handler)
		}
	}()

	return nil
}

func handleConn(conn net.Conn, handler func(ControlMessage)) {
	defer conn.Close()

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		return
	}
	handler(msg)
}

// Send delivers one command to the daemon listening on path.
func Send(path string, msg ControlMessage) error {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return err
	}
	defer conn.Close()

	return json.NewEncoder(conn).Encode(msg)
}
