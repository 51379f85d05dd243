package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lmdpipe/core/issue"
	"github.com/gaurav-prasanna/lmdpipe/web"
)

var (
	flagListen     string
	flagServeLocal bool
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a browsable preview of issues and their RSS feeds",
	Long: `Serve starts a web server listing this year's issues. Each issue page links
its articles, every article links to the next one, and /rss/<date> serves the
issue's table of contents as an RSS feed.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default: listen from config)")
	serveCmd.Flags().BoolVarP(&flagServeLocal, "local", "l", false, "Read pages from the local mirror")
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := flagListen
	if addr == "" {
		addr = cfg.Listen
	}
	tpl, err := templates()
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := web.New(source(flagServeLocal), tpl, issue.ParseLocale(cfg.Locale), logger)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving preview", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return httpSrv.Shutdown(shutdownCtx)
}
