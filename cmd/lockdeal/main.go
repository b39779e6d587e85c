package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/DT1234273/Lockdeal/config"
	"github.com/DT1234273/Lockdeal/internal/api"
	logs "github.com/DT1234273/Lockdeal/internal/infra/log"
	"github.com/DT1234273/Lockdeal/internal/infra/poll"
	"github.com/DT1234273/Lockdeal/internal/infra/qrcode"
	"github.com/DT1234273/Lockdeal/internal/store"
	"github.com/DT1234273/Lockdeal/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectAPI(),
		injectUsecase(),
		fx.Invoke(runCommand),
	)

	app.Run()

	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		newStore,
		newQRCodeService,
		poll.New,
	)
}

func newStore(cfg *config.Config) (*store.Store, error) {
	return store.New(cfg.Storage.Path)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) *qrcode.Service {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewService(256, "M")
	}

	return qrcode.NewService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectAPI() fx.Option {
	return fx.Options(
		fx.Provide(
			newAPIClient,
			api.NewAuthAPI,
			api.NewProductAPI,
			api.NewGroupAPI,
			api.NewDealAPI,
			api.NewRatingAPI,
			api.NewSellerAPI,
			api.NewRecommendationAPI,
		),
	)
}

func newAPIClient(cfg *config.Config, st *store.Store, logger *slog.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, st, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewLifecycleService,
		),
	)
}
