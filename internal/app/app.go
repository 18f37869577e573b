package app

import (
	"context"
	"net/http"
	"time"

	gcode "github.com/iwtcode/gcodeAdapter"
	"github.com/iwtcode/gcodeAdapter/internal/adapters/handlers"
	"github.com/iwtcode/gcodeAdapter/internal/config"
	"github.com/iwtcode/gcodeAdapter/internal/interfaces"
	"github.com/iwtcode/gcodeAdapter/internal/logging"
	"github.com/iwtcode/gcodeAdapter/internal/services/kafka"
	"github.com/iwtcode/gcodeAdapter/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		ClientModule,
		ProducerModule,
		UsecaseModule,
		HttpServerModule,
		fx.NopLogger,
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(lc fx.Lifecycle, cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(logging.Config{
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: cfg.Logging.SavingDays,
	})
	lc.Append(fx.StopHook(logger.Close))
	return logger
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

// ProvideClient создает клиент библиотеки. Лог клиента пишется только в stdout,
// чтобы файл лога открывал один владелец.
func ProvideClient(lc fx.Lifecycle, cfg *config.AppConfig) (*gcode.Client, error) {
	client, err := gcode.New(&gcode.Config{
		LogLevel:          cfg.Logging.Level,
		MaxProgramLines:   cfg.MaxProgramLines,
		CacheSize:         cfg.CacheSize,
		Workers:           cfg.Workers,
		DefaultController: cfg.DefaultController,
		OptionsFile:       cfg.OptionsFile,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	return client, nil
}

var ClientModule = fx.Module("client_module",
	fx.Provide(ProvideClient),
)

func ProvideProducer(lc fx.Lifecycle, cfg *config.AppConfig) interfaces.KafkaService {
	producer := kafka.NewKafkaProducer(cfg)
	lc.Append(fx.StopHook(producer.Close))
	return producer
}

var ProducerModule = fx.Module("producer_module",
	fx.Provide(ProvideProducer),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      h,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.WithField("address", serverAddr).Info("HTTP Server is starting")
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.WithError(err).Error("Failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
