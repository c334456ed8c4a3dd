package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/indigo-web/mediatype"
	"github.com/indigo-web/mediatype/config"
	"github.com/indigo-web/mediatype/httpd"
	"github.com/indigo-web/mediatype/internal/logger"
	"github.com/indigo-web/mediatype/watch"
)

const logSender = "cmd"

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the media types lookup service",
		Long: `Start the HTTP lookup service. The table is built from the
compiled-in one, or from the configured types file. If watching
is enabled, the table is reloaded every time the file changes.
The service stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, table, err := opts.load()
			if err != nil {
				return err
			}

			if err = logger.InitLogger(logSettings(cfg.Log)); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, table)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, table *mediatype.Table) error {
	mediatype.Use(table)
	defer mediatype.Use(nil)

	var reloader httpd.Reloader
	if len(cfg.Types.File) > 0 {
		reloader = watch.Source{Table: table, Path: cfg.Types.File}

		if cfg.Types.Watch {
			watcher, err := watch.New(table, cfg.Types.File)
			if err != nil {
				return err
			}

			defer watcher.Close()
			reloader = watcher
		}
	}

	logger.Info(logSender, "serving %d media types, default is %q", table.Len(), table.Default())

	return httpd.NewServer(table, reloader, cfg.HTTPD).Serve(ctx)
}

func logSettings(cfg config.Log) logger.Settings {
	return logger.Settings{
		FilePath:   cfg.FilePath,
		Level:      cfg.Level,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
