package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regradar/compliance-cli/internal/sched"
	"github.com/regradar/compliance-cli/internal/server"
	"github.com/regradar/compliance-cli/internal/tokenstore"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnrichment(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		tokens := tokenstore.New()
		go tokens.RunSweeper(ctx, time.Duration(cfg.VoiceCalls.SweepIntervalSecs)*time.Second)

		if cfg.Refresh.Enabled {
			scheduler := sched.New()
			job := &sched.RefreshJob{
				Store:    env.Store,
				Enricher: env.Assembler,
				MaxAge:   time.Duration(cfg.Refresh.MaxAgeDays) * 24 * time.Hour,
				Limit:    cfg.Refresh.Limit,
			}
			if err := scheduler.Add(cfg.Refresh.Cron, job); err != nil {
				return err
			}
			scheduler.Start()
			defer scheduler.Stop()
			zap.L().Info("stale profile refresh scheduled",
				zap.String("cron", cfg.Refresh.Cron),
				zap.Int("max_age_days", cfg.Refresh.MaxAgeDays))
		}

		api := server.New(env.Assembler, env.Store, tokens,
			time.Duration(cfg.VoiceCalls.DefaultExpiryMinutes)*time.Minute,
			cfg.Batch.MaxConcurrentCompanies)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.Handler(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
