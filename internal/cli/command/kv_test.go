package command

import (
	"net"
	"testing"
)

func startFakeServer(t *testing.T, reply []byte) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		conn.Read(buf)
		conn.Write(reply)
	}()

	return ln.Addr().String()
}

func TestGetCommandRequiresOneArg(t *testing.T) {
	app := App()
	if err := app.Run([]string{"shardkv-cli", "get"}); err == nil {
		t.Error("expected error with no KEY argument")
	}
	if err := app.Run([]string{"shardkv-cli", "get", "a", "b"}); err == nil {
		t.Error("expected error with two KEY arguments")
	}
}

func TestSetCommandRequiresTwoArgs(t *testing.T) {
	app := App()
	if err := app.Run([]string{"shardkv-cli", "set", "a"}); err == nil {
		t.Error("expected error with missing VALUE argument")
	}
}

func TestDelCommandRequiresAtLeastOneArg(t *testing.T) {
	app := App()
	if err := app.Run([]string{"shardkv-cli", "del"}); err == nil {
		t.Error("expected error with no KEY arguments")
	}
}

func TestGetCommandRoundTrip(t *testing.T) {
	addr := startFakeServer(t, []byte("$1\r\n1\r\n"))
	app := App()
	if err := app.Run([]string{"shardkv-cli", "--server", addr, "get", "x"}); err != nil {
		t.Errorf("Run: %v", err)
	}
}
