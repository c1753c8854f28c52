package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagesmith/pagesmith/internal/server"
	"github.com/pagesmith/pagesmith/internal/validation"
	"github.com/pagesmith/pagesmith/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API with live reload",
	Long: `Serve starts the build engine's HTTP API: build endpoints, sandboxed
file management for the template and data trees, static serving of the
output tree, and a websocket channel that notifies connected browsers
when templates change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "host to bind the HTTP server to")
	serveCmd.Flags().IntP("port", "p", 0, "port to bind the HTTP server to")
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(e.cfg, e.orch, e.sandbox, e.logger)

	debounce := time.Duration(e.cfg.Build.WatchDebounce) * time.Millisecond
	fw, err := watcher.New(debounce, e.logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	templateRoot := e.sandbox.Root(validation.RootTemplates)
	if err := fw.AddRecursive(templateRoot); err != nil {
		return err
	}

	// Template edits drop cached parses and ping connected browsers. The
	// next build reloads from disk either way; this just makes it live.
	registry := e.orch.Registry()
	hub := srv.Hub()
	fw.OnChange(func(events []watcher.ChangeEvent) {
		for _, event := range events {
			registry.Invalidate(event.Path)
			e.logger.Debug(ctx, "template changed", "path", event.Path, "op", event.Op)
		}
		hub.Broadcast(ctx, server.ReloadMessage{Type: "reload"})
	})

	fw.Start(ctx)

	return srv.Start(ctx)
}
