package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skylarmartinex/pagesmith/internal/server"
)

var (
	serveAddr    string
	serveVerbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pagesmith HTTP API",
	Long: `Start the HTTP API exposing generation, layout, export and project
persistence.

Endpoints:
  GET  /healthz
  POST /api/generate
  POST /api/layout
  POST /api/export/{format}
  POST /api/projects/          GET/PUT/DELETE /api/projects/{id}

The server drains in-flight requests on SIGINT/SIGTERM.

Examples:
  pagesmith serve
  pagesmith serve --addr :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	// Request logs stay visible without -v, so the server gets a full
	// production logger rather than the warn-level CLI one.
	var logger *zap.Logger
	if serveVerbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := buildProviderRegistry(ctx, cfg, logger)
	if err != nil {
		return err
	}
	formats, err := buildFormats(cfg, logger)
	if err != nil {
		return err
	}
	projects, err := buildProjects(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, server.Deps{
		Logger:          logger,
		Formats:         formats,
		Providers:       providers,
		Projects:        projects,
		Searcher:        buildSearcher(cfg),
		DefaultProvider: cfg.DefaultProvider,
		DefaultOptions:  exportOptions(cfg),
	})

	return srv.Start(ctx)
}
