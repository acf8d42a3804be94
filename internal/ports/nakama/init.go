package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"bridgeroom/internal/app"
	"bridgeroom/internal/bot"
	"bridgeroom/internal/config"
	"bridgeroom/internal/ports"
	"bridgeroom/internal/ports/postgres"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires the room service and its RPCs into the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(configPath); err != nil {
		logger.Warn("Failed to load game config, using defaults: %v", err)
	}
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg := config.GetGameConfig().WithEnv(env)

	store, err := newRoomStore(ctx, cfg, nk)
	if err != nil {
		return err
	}

	opts := app.Options{
		MaxCommitAttempts: cfg.MaxCommitAttempts,
		StoreTimeout:      cfg.StoreTimeout(),
	}
	if cfg.RobotsEnabled {
		brain, err := bot.NewBrain(bot.BotLevel(cfg.RobotLevel))
		if err != nil {
			return err
		}
		opts.Robots = brain
	}
	if voice := app.NewVivoxService(cfg.VoiceSecret, cfg.VoiceIssuer, cfg.VoiceDomain); voice.Configured() {
		opts.Voice = voice
	} else {
		logger.Warn("Vivox credentials missing from env, %s disabled.", RpcRoomVoiceToken)
	}

	svc := app.NewService(store, NewNakamaRoomNotifier(nk, logger), nil, opts)
	if err := RegisterRPCs(initializer, svc); err != nil {
		return err
	}

	logger.WithField("room_store", cfg.RoomStore).WithField("robots", cfg.RobotsEnabled).Info("Bridge Go module loaded.")
	return nil
}

func newRoomStore(ctx context.Context, cfg config.GameConfig, nk runtime.NakamaModule) (ports.RoomStore, error) {
	if cfg.RoomStore != config.StorePostgres {
		return NewNakamaRoomStore(nk), nil
	}
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("%s store selected but %s is not set", config.StorePostgres, config.EnvPostgresDSN)
	}
	pg, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pg); err != nil {
		pg.Close()
		return nil, err
	}
	return postgres.NewRoomStore(pg), nil
}
