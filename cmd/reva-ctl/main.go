package main

import (
	"fmt"

	cli "github.com/spf13/pflag"

	"reva/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", ipc.DefaultSocket, "Control socket path")
	file := cli.StringP("file", "f", "", "Audio file to inject as one caller turn")
	cli.Parse()

	msg := ipc.ControlMessage{Cmd: "call"}
	if args := cli.Args(); len(args) > 0 {
		msg.Cmd = args[0]
	}
	if *file != "" {
		msg = ipc.ControlMessage{Cmd: "say", Path: *file}
	}

	if err := ipc.Send(*socket, msg); err != nil {
		fmt.Println("reva-daemon not running:", err)
	}
}
