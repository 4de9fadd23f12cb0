package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/gap-hunter/internal/pipeline"
	"github.com/pdiddy/gap-hunter/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser surface",
	Long: `Serve starts an HTTP server with a topic form, an HTML results view,
and YAML/JSON download endpoints. The server is stateless: every request
runs a fresh hunt against the academic APIs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		debug, _ := cmd.Flags().GetBool("debug")
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}

		p := pipeline.New(httpClient(cfg), cfg)
		srv := web.NewServer(p)

		fmt.Fprintf(os.Stderr, "gap-hunter listening on %s\n", addr)
		return srv.Run(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().Bool("debug", false, "enable gin debug logging")

	rootCmd.AddCommand(serveCmd)
}
