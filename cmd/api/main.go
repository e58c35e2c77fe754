package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "photoshare",
		Usage:   "Photo sharing API",
		Version: version,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runServer(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runMigrate()
				},
			},
			{
				Name:  "set-role",
				Usage: "Assign a role to an existing account (bootstraps the first admin)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Account email",
					},
					&cli.StringFlag{
						Name:    "role",
						Aliases: []string{"r"},
						Value:   "admin",
						Usage:   "One of admin, moderator, user",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSetRole(ctx, cmd.String("email"), cmd.String("role"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Printf("application error: %v", err)
		os.Exit(1)
	}
}
