package command

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dreamware/shardkv/internal/cli/repl"
	"github.com/dreamware/shardkv/internal/cli/respclient"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:  "shardkv-cli",
		Usage: "shardkv command-line client",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DelCommand(),
			PingCommand(),
			ReplCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "shardkv-server address",
			EnvVars: []string{"SHARDKV_SERVER"},
			Value:   "127.0.0.1:6379",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "connection and request timeout",
			Value: 5 * time.Second,
		},
	}
}

func clientFromContext(c *cli.Context) *respclient.Client {
	return respclient.New(c.String("server"), c.Duration("timeout"))
}

// ReplCommand returns the interactive REPL subcommand.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive session",
		Action: func(c *cli.Context) error {
			client := clientFromContext(c)
			defer client.Close()
			return repl.New(client).Run()
		},
	}
}

