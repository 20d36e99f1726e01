package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/hangman-backend/internal/audio"
	"github.com/rocketscienceinc/hangman-backend/internal/config"
	"github.com/rocketscienceinc/hangman-backend/internal/countdown"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
	"github.com/rocketscienceinc/hangman-backend/internal/repository"
	"github.com/rocketscienceinc/hangman-backend/internal/repository/storage"
	"github.com/rocketscienceinc/hangman-backend/internal/service"
	redispub "github.com/rocketscienceinc/hangman-backend/internal/transport/redis"
	"github.com/rocketscienceinc/hangman-backend/internal/usecase"
	"github.com/rocketscienceinc/hangman-backend/transport/rest"
	"github.com/rocketscienceinc/hangman-backend/transport/websocket"
)

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

	seed := conf.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	questionRepo := repository.NewQuestionRepository(conf.QuestionsPath)
	questionService := service.NewQuestionService(logger, questionRepo, rand.New(rand.NewSource(seed))) //nolint: gosec // it's ok

	// diagnostic only: a broken resource must not stop the server
	if count := len(questionService.Load(ctx)); count == 0 {
		log.Warn("no questions available, games will stay idle", "path", conf.QuestionsPath)
	} else {
		log.Info("questions available", "count", count)
	}

	library := audio.LoadLibrary(logger, conf.Assets.Dir, conf.Assets.URLPrefix, audio.Files{
		Win:        conf.Assets.Win,
		Background: conf.Assets.Background,
		Warning:    conf.Assets.Warning,
	})

	rules := conf.Game.Rules()
	games := usecase.NewGames(logger, rules, questionService, library, countdown.RealClock(), conf.Game.Seed)

	var publisher *redispub.Publisher
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		publisher = redispub.NewPublisher(logger, redisStorage.Connection, redispub.DefaultQueueSize)
		go publisher.Run(ctx)
	}

	logRules(log, rules)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, conf.Assets.Dir, conf.Assets.URLPrefix, questionService)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, games, snapshotPublisher(publisher))
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// snapshotPublisher - keeps a nil *Publisher from turning into a non-nil interface.
func snapshotPublisher(publisher *redispub.Publisher) interface{ Publish(entity.Snapshot) } {
	if publisher == nil {
		return nil
	}

	return publisher
}

func logRules(log *slog.Logger, rules entity.Rules) {
	log.Info("game rules",
		"seconds_per_letter", rules.SecondsPerLetter,
		"warning_threshold", rules.WarningThreshold,
		"hit_points", rules.HitPoints,
		"miss_penalty", rules.MissPenalty,
	)
}
