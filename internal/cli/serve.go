package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"zozikafe/internal/admin"
	adminapi "zozikafe/internal/api/admin"
	authapi "zozikafe/internal/api/auth"
	siteapi "zozikafe/internal/api/site"
	routes "zozikafe/internal/app/http"
	"zozikafe/internal/infra/events"
	"zozikafe/internal/infra/metrics"
	"zozikafe/internal/infra/telemetry"
	"zozikafe/internal/public"
	"zozikafe/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, kvs, records, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = kvs.Close() }()

	shutdownTracing, err := telemetry.Setup(ctx, "zozikafe", cfg.OTELEndpoint)
	if err != nil {
		log.Printf("telemetry: disabled: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	var forward events.Publisher
	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			log.Printf("events: NATS unavailable, not forwarding: %v", err)
		} else {
			defer pub.Close()
			forward = pub
		}
	}
	bus := events.NewBus(forward)
	m := metrics.New()

	ctrl := admin.New(ctx, records, admin.WithEvents(bus), admin.WithMetrics(m))
	if cfg.SeedOnEmpty {
		if _, err := ctrl.SeedIfEmpty(ctx); err != nil {
			log.Printf("admin: seed: %v", err)
		}
	}

	renderer := public.NewRenderer(records, public.WithMetrics(m))
	unwatch := renderer.Watch(bus)
	defer unwatch()

	gate, err := authapi.NewHandler(cfg)
	if err != nil {
		return fmt.Errorf("admin gate: %w", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	routes.RegisterRoutes(r, routes.Deps{
		Site:    siteapi.NewHandler(renderer),
		Admin:   adminapi.NewHandler(ctrl, records),
		Auth:    gate,
		Prefs:   records,
		Metrics: m.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http: listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("http: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = []string{origin}
	cfg.AllowCredentials = true
	return cfg
}
