package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/census-dash/internal/chart"
	"github.com/sells-group/census-dash/internal/config"
	"github.com/sells-group/census-dash/internal/dashboard"
	"github.com/sells-group/census-dash/internal/render"
)

const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		frame, err := loadFrame(cmd, "serve")
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           dashboard.NewServer(frame, serverOptions(cfg)).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return runServer(ctx, srv)
	},
}

func serverOptions(c *config.Config) dashboard.Options {
	return dashboard.Options{
		Render:      renderOptions(c),
		Dispatcher:  chart.Dispatcher{Zoom: c.Render.MapZoom, MapStyle: c.Render.MapStyle},
		RateLimit:   c.Server.RateLimit,
		RateBurst:   c.Server.RateBurst,
		CORSOrigins: c.Server.CORSOrigins,
	}
}

func renderOptions(c *config.Config) render.Options {
	return render.Options{
		Width:  c.Render.Width,
		Height: c.Render.Height,
		Bins:   c.Render.HistogramBins,
	}
}

// runServer serves until ctx is cancelled, then drains open requests.
func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server shutdown")
		}
		return nil
	})

	return g.Wait()
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
