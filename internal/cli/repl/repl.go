package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dreamware/shardkv/internal/cli/output"
	"github.com/dreamware/shardkv/internal/cli/respclient"
)

// REPL reads commands from input, sends them to a shardkv-server
// connection, and prints the decoded reply.
type REPL struct {
	client *respclient.Client
	input  io.Reader
	output io.Writer
}

// New creates a REPL that sends commands through client.
func New(client *respclient.Client) *REPL {
	return &REPL{client: client, input: os.Stdin, output: os.Stdout}
}

// Run starts the read-eval-print loop. It returns nil on EOF (Ctrl-D)
// or when the user types "exit"/"quit".
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "shardkv> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "(error) %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	v, err := r.client.Execute(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.output, output.FormatReply(v))
	return nil
}
