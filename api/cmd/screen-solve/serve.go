package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"screen-solve/api/internal/config"
	"screen-solve/api/internal/handle"
	"screen-solve/api/internal/httpserver"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (/health, /screen-solve)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			solver, closeJournal, err := a.newSolver(ctx)
			if err != nil {
				return err
			}
			defer closeJournal()

			gin.SetMode(gin.ReleaseMode)
			h := handle.New(solver, a.cfg.Timeout, config.OpenAIKeyConfigured)
			r := handle.NewRouter(h, a.cfg.CORSAllowOrigins)

			if addr == "" {
				addr = net.JoinHostPort("0.0.0.0", a.cfg.Port)
			}
			return httpserver.Serve(ctx, addr, r)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default 0.0.0.0:$PORT)")
	return cmd
}
