package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"github.com/tartampluch/go-agecalc/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	var port, birth string

	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = c.env.Port
			}
			srv := server.New(port, engine.NewCalculator(), c.buildFetcher(cmd), c.env.InsightTimeout)
			if birth != "" {
				d, err := engine.ParseDate(birth)
				if err != nil {
					return fmt.Errorf("%s: %w", config.ErrInvalidInput, err)
				}
				if err := srv.PublishCalendar(d); err != nil {
					return err
				}
			}
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	cmd.Flags().StringVar(&birth, config.FlagBirth, "", config.FlagDescBirth)
	return cmd
}
