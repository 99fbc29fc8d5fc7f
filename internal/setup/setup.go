package setup

import (
	"github.com/enroll-dev/enroll/internal/config"
	"github.com/enroll-dev/enroll/internal/handler"
	"github.com/enroll-dev/enroll/internal/logger"
	"github.com/enroll-dev/enroll/internal/service"
	"github.com/enroll-dev/enroll/internal/storage/file"
	"github.com/enroll-dev/enroll/internal/storage/memory"
	"github.com/enroll-dev/enroll/internal/utils/email"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *file.Storage
	Handler *handler.Handler
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := file.New(cfg.Public.UsersFile)
	if err != nil {
		return nil, err
	}

	pending := memory.New()

	var sender service.Sender
	if cfg.Email().Configured() {
		sender = email.New(cfg.Email())
		logger.Log.Info("email transport configured", "server", cfg.Email().SMTPServer)
	} else {
		sender = email.LogSender{}
		logger.Log.Info("email credentials not set, codes will be logged to stdout")
	}

	auth := service.NewAuth(storage, pending, sender, cfg.CodeTTL(), cfg.Public.BcryptCost)
	h := handler.New(auth)

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: h,
	}, nil
}
