package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/socratesone/knowledge-navigator/internal/server"
	"github.com/socratesone/knowledge-navigator/internal/session"
	"github.com/socratesone/knowledge-navigator/internal/site"
	"github.com/socratesone/knowledge-navigator/internal/store"
	"github.com/socratesone/knowledge-navigator/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long: `Builds the static site, then serves it together with the JSON API
(manifest, topics, search, reader preferences). With --watch, content
changes rebuild the site and connected browsers reload automatically.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override the configured port")
	serveCmd.Flags().Bool("watch", true, "rebuild and reload on content changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch, _ = cmd.Flags().GetBool("watch")
	}

	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return fmt.Errorf("opening preferences store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build the static site first so the file routes have content. The
	// generator hands back the library it rendered from, so the API
	// serves the same pipeline output without a second load.
	generator := site.NewGenerator(cfg, st)
	lib, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	fmt.Printf("Built %d topics into %s\n", len(lib.Topics), cfg.OutputDir)

	srv := server.New(cfg, lib, st)

	if cfg.Watch {
		sess := session.New()
		defer sess.Close()
		sess.OnCommit(func(string) {
			srv.Hub().Broadcast("reload")
		})

		w, err := watch.New(cfg, sess, func(ctx context.Context) error {
			fresh, err := generator.Generate(ctx)
			if err != nil {
				return err
			}
			srv.SetLibrary(fresh)
			return nil
		})
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		go func() { _ = w.Start(ctx) }()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
