package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/notify"
	"github.com/rocketscienceinc/tictactoe-board/internal/storage"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-board/transport/rest"
	"github.com/rocketscienceinc/tictactoe-board/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	hub := websocket.NewHub(logger, websocket.Options{
		SendBuffer:   conf.WebSocket.SendBuffer,
		WriteTimeout: conf.WebSocket.WriteTimeout,
	})
	defer hub.Close()

	relayErrCh := make(chan error, 1)

	var notifier usecase.Notifier = hub

	if conf.Fanout == config.FanoutRedis {
		redisClient, err := connectRedis(ctx, conf)
		if err != nil {
			return err
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		notifier = notify.NewPublisher(logger, redisClient, conf.Redis.Channel)

		relay := notify.NewRelay(logger, redisClient, conf.Redis.Channel, hub)
		go func() {
			if relayErr := relay.Run(ctx); relayErr != nil {
				log.Error("Relay error", "error", relayErr)
				relayErrCh <- relayErr
			}
		}()
	}

	session := usecase.NewSession(logger, notifier)
	router := rest.NewRouter(rest.NewHandlers(logger, session), hub, conf.StaticDir)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "fanout", conf.Fanout)
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
		close(httpErrCh)
	}()

	select {
	case err := <-relayErrCh:
		return fmt.Errorf("relay error: %w", err)
	case err, ok := <-httpErrCh:
		if ok {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		log.Info("HTTP server stopped")
		return nil
	}
}

func connectRedis(ctx context.Context, conf *config.Config) (*redis.Client, error) {
	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	client, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return client, nil
}
