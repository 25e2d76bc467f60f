package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/himanshuchauhan33/cracker-shop/internal/admin"
	"github.com/himanshuchauhan33/cracker-shop/internal/cart"
	"github.com/himanshuchauhan33/cracker-shop/internal/catalog"
	"github.com/himanshuchauhan33/cracker-shop/internal/checkout"
	"github.com/himanshuchauhan33/cracker-shop/internal/config"
	"github.com/himanshuchauhan33/cracker-shop/internal/httpx"
	"github.com/himanshuchauhan33/cracker-shop/internal/notify"
	"github.com/himanshuchauhan33/cracker-shop/internal/order/sqlite"
	"github.com/himanshuchauhan33/cracker-shop/internal/payment"
	"github.com/himanshuchauhan33/cracker-shop/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	shutdown, err := telemetry.SetupTracer(ctx, "shop")
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	cat, err := catalog.LoadFile(cfg.ProductsPath)
	if err != nil {
		// The shop still runs; it just has nothing to sell until the file
		// is fixed.
		slog.Warn("catalog unavailable, starting with empty product list", "error", err)
	}
	slog.Info("catalog loaded", "products", cat.Len())

	repo, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open order database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	var carts cart.Store
	if cfg.RedisAddr != "" {
		carts = cart.NewRedisStore(cfg.RedisAddr, cart.DefaultCartTTL)
		slog.Info("using redis session store", "addr", cfg.RedisAddr)
	} else {
		carts = cart.NewMemoryStore()
		slog.Warn("REDIS_ADDR unset, carts are held in process memory")
	}

	var sender notify.Sender
	if cfg.MailEnabled() {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	} else {
		slog.Warn("mail transport unconfigured, order confirmations disabled")
	}
	mailer := notify.NewMailer(sender, cfg.ShopName)

	var provider payment.Provider
	if cfg.PaymentEnabled() {
		provider = payment.NewStripeProvider(cfg.StripeSecretKey, cfg.Currency, cfg.BaseURL)
	} else {
		slog.Warn("STRIPE_SECRET_KEY unset, hosted payment redirect disabled")
	}

	if cfg.AdminPassword == config.DefaultAdminPassword {
		slog.Warn("ADMIN_PASSWORD unset, using the well-known default")
	}

	co := checkout.NewService(cat, repo, mailer, provider)
	adm := admin.NewService(cfg.AdminPassword, repo)
	handler := httpx.NewHandler(cat, carts, co, adm, cfg.ShopName, cfg.WhatsappNumber)
	router := httpx.NewRouter(handler, cfg.SessionCookie)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: otelhttp.NewHandler(router, "shop"),
	}

	go func() {
		slog.Info("shop listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
}
