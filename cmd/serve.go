package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"diffly/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd runs the report server over the output directory.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generated changeset reports over HTTP",
	Long: `Starts a read-only HTTP server that lists the changesets in the output
directory and returns their rendered files. Protect it with SERVER_API_KEY
when exposing it beyond localhost.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg := bootstrap()
		defer logg.Sync()

		srv := server.New(cfg.Server, cfg.Output.Dir, logg)

		go func() {
			logg.Info("Starting report server",
				zap.String("port", cfg.Server.Port),
				zap.String("dir", cfg.Output.Dir))
			if err := srv.Listen(); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = srv.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
