package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dreamware/shardkv/internal/cli/output"
)

// GetCommand returns the "get" subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("get requires exactly one KEY argument")
			}
			return runCommand(c, "GET", c.Args().Get(0))
		},
	}
}

// SetCommand returns the "set" subcommand.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set the value of a key",
		ArgsUsage: "KEY VALUE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("set requires exactly KEY and VALUE arguments")
			}
			return runCommand(c, "SET", c.Args().Get(0), c.Args().Get(1))
		},
	}
}

// PingCommand returns the "ping" subcommand, a bare connectivity check.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "Check connectivity to the server",
		Action: func(c *cli.Context) error {
			return runCommand(c, "PING")
		},
	}
}

// DelCommand returns the "del" subcommand.
func DelCommand() *cli.Command {
	return &cli.Command{
		Name:      "del",
		Usage:     "Delete one or more keys",
		ArgsUsage: "KEY [KEY ...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("del requires at least one KEY argument")
			}
			return runCommand(c, "DEL", c.Args().Slice()...)
		},
	}
}

func runCommand(c *cli.Context, verb string, rest ...string) error {
	client := clientFromContext(c)
	defer client.Close()

	args := append([]string{verb}, rest...)
	v, err := client.Execute(args)
	if err != nil {
		return err
	}
	fmt.Println(output.FormatReply(v))
	return nil
}
