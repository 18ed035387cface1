package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "farmstay/internal/app/services/admin"
	bookingapp "farmstay/internal/app/services/booking"
	domainreservation "farmstay/internal/domain/reservation"
	"farmstay/internal/domain/shared/money"
	"farmstay/internal/domain/tariff"
	"farmstay/internal/infra/broker/kafka"
	"farmstay/internal/infra/config"
	mongodb "farmstay/internal/infra/db/mongo"
	ginserver "farmstay/internal/infra/http/gin"
	"farmstay/internal/infra/obs"
	"farmstay/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StorageMode = "memory"
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	trf := loadTariff(cfg.TariffPath, logger)

	repo, readiness, cleanup, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	var events bookingapp.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Warn("kafka producer unavailable, events disabled", "error", err)
		} else {
			defer producer.Close()
			events = producer
			logger.Info("reservation events enabled", "topic", cfg.EventsTopic)
		}
	}

	bookingSvc := &bookingapp.Service{
		Reservations: repo,
		Tariff:       trf,
		Events:       events,
		EventsTopic:  cfg.EventsTopic,
		Logger:       logger,
	}
	adminSvc := &adminapp.Service{
		Reservations: repo,
		Tariff:       trf,
		Events:       events,
		EventsTopic:  cfg.EventsTopic,
		Logger:       logger,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: readiness,
	}, ginserver.Handlers{
		Booking: ginserver.BookingHandler{Service: bookingSvc},
		Admin:   ginserver.AdminHandler{Service: adminSvc, Logger: logger},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (domainreservation.Repository, func() error, func(), error) {
	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		readiness := func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		return mongodb.NewReservationRepository(client.DB), readiness, cleanup, nil
	default:
		return memory.NewReservationRepository(), func() error { return nil }, func() {}, nil
	}
}

// loadTariff reads the pricing table fixture, falling back to the built-in
// defaults when the file is absent or unreadable.
func loadTariff(path string, logger *slog.Logger) tariff.Tariff {
	if path == "" {
		return tariff.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("tariff fixture unreadable, using defaults", "path", path, "error", err)
		return tariff.Default()
	}
	var fx tariffFixture
	if err := json.Unmarshal(data, &fx); err != nil {
		logger.Warn("tariff fixture invalid, using defaults", "path", path, "error", err)
		return tariff.Default()
	}
	trf := fx.toTariff()
	if err := trf.Validate(); err != nil {
		logger.Warn("tariff fixture rejected, using defaults", "path", path, "error", err)
		return tariff.Default()
	}
	logger.Info("tariff fixture loaded", "path", path)
	return trf
}

type tariffFixture struct {
	BaseCapacity          int                     `json:"base_capacity"`
	BasePricePerNight     int64                   `json:"base_price_per_night"`
	ExtraGuestFeePerNight int64                   `json:"extra_guest_fee_per_night"`
	ExtraFeePerNight      bool                    `json:"extra_fee_per_night"`
	AllowSameDay          bool                    `json:"allow_same_day"`
	RequireGrillForMeals  bool                    `json:"require_grill_for_meals"`
	MinNights             int                     `json:"min_nights"`
	MaxNights             int                     `json:"max_nights"`
	Addons                map[string]addonFixture `json:"addons"`
}

type addonFixture struct {
	UnitPrice        int64  `json:"unit_price"`
	UnitLabel        string `json:"unit_label"`
	MaxQuantity      int    `json:"max_quantity"`
	UnitsPerPurchase int    `json:"units_per_purchase"`
}

func (fx tariffFixture) toTariff() tariff.Tariff {
	trf := tariff.Tariff{
		BaseCapacity:          fx.BaseCapacity,
		BasePricePerNight:     money.Amount(fx.BasePricePerNight),
		ExtraGuestFeePerNight: money.Amount(fx.ExtraGuestFeePerNight),
		ExtraFeePerNight:      fx.ExtraFeePerNight,
		AllowSameDay:          fx.AllowSameDay,
		RequireGrillForMeals:  fx.RequireGrillForMeals,
		MinNights:             fx.MinNights,
		MaxNights:             fx.MaxNights,
		Addons:                make(map[tariff.Category]tariff.AddonTariff, len(fx.Addons)),
	}
	for key, addon := range fx.Addons {
		trf.Addons[tariff.Category(key)] = tariff.AddonTariff{
			UnitPrice:        money.Amount(addon.UnitPrice),
			UnitLabel:        addon.UnitLabel,
			MaxQuantity:      addon.MaxQuantity,
			UnitsPerPurchase: addon.UnitsPerPurchase,
		}
	}
	return trf
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
