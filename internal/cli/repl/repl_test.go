package repl

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/dreamware/shardkv/internal/cli/respclient"
)

func startFakeServer(t *testing.T, reply []byte) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				buf := make([]byte, 4096)
				for {
					if _, err := conn.Read(buf); err != nil {
						return
					}
					conn.Write(reply)
				}
			}()
		}
	}()

	return ln.Addr().String()
}

func TestRunExit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"exit command", "exit\n"},
		{"quit command", "quit\n"},
		{"EOF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := respclient.New("127.0.0.1:0", time.Second)
			r := New(client)
			r.input = strings.NewReader(tt.input)
			out := &bytes.Buffer{}
			r.output = out

			if err := r.Run(); err != nil {
				t.Errorf("Run() returned error: %v", err)
			}
		})
	}
}

func TestRunEmptyLinesSkipped(t *testing.T) {
	client := respclient.New("127.0.0.1:0", time.Second)
	r := New(client)
	r.input = strings.NewReader("\n\n\nexit\n")
	out := &bytes.Buffer{}
	r.output = out

	if err := r.Run(); err != nil {
		t.Errorf("Run() returned error: %v", err)
	}
}

func TestRunExecutesCommand(t *testing.T) {
	addr := startFakeServer(t, []byte("+OK\r\n"))
	client := respclient.New(addr, 2*time.Second)
	defer client.Close()

	r := New(client)
	r.input = strings.NewReader("SET x 1\nexit\n")
	out := &bytes.Buffer{}
	r.output = out

	if err := r.Run(); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(out.String(), "OK") {
		t.Errorf("output = %q, want it to contain OK", out.String())
	}
}
