package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Room store backends selectable with room_store.
const (
	StoreNakama   = "nakama"
	StorePostgres = "postgres"
)

// Runtime environment keys that override the config file.
const (
	EnvRobotsEnabled  = "bridge_robots_enabled"
	EnvRobotLevel     = "bridge_robot_level"
	EnvRoomStore      = "bridge_room_store"
	EnvPostgresDSN    = "bridge_postgres_dsn"
	EnvStoreTimeoutMs = "bridge_store_timeout_ms"
	EnvVivoxSecret    = "vivox_secret"
	EnvVivoxIssuer    = "vivox_issuer"
	EnvVivoxDomain    = "vivox_domain"
)

type GameConfig struct {
	MaxCommitAttempts int    `json:"max_commit_attempts"`
	StoreTimeoutMs    int    `json:"store_timeout_ms"`
	RobotsEnabled     bool   `json:"robots_enabled"`
	RobotLevel        string `json:"robot_level"`
	RoomStore         string `json:"room_store"`
	// PostgresDSN is only read from the environment; it never lives in the config file.
	PostgresDSN string `json:"-"`
	VoiceIssuer string `json:"voice_issuer"`
	VoiceDomain string `json:"voice_domain"`
	VoiceSecret string `json:"-"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() GameConfig {
	return GameConfig{
		MaxCommitAttempts: 3,
		StoreTimeoutMs:    2000,
		RobotsEnabled:     true,
		RobotLevel:        "standard",
		RoomStore:         StoreNakama,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path once per process.
// A missing file keeps the defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := Load(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// Load reads a config file over the defaults.
func Load(path string) (GameConfig, error) {
	c := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("failed to read game config: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Defaults(), fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	c.normalize()
	return c, nil
}

// GetGameConfig returns the global game configuration, or the defaults if none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}

// WithEnv returns a copy of c with runtime environment overrides applied.
// Malformed numeric or boolean values are ignored.
func (c GameConfig) WithEnv(env map[string]string) GameConfig {
	if v, ok := env[EnvRobotsEnabled]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RobotsEnabled = b
		}
	}
	if v := env[EnvRobotLevel]; v != "" {
		c.RobotLevel = v
	}
	if v := env[EnvRoomStore]; v != "" {
		c.RoomStore = v
	}
	if v := env[EnvPostgresDSN]; v != "" {
		c.PostgresDSN = v
	}
	if v := env[EnvStoreTimeoutMs]; v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.StoreTimeoutMs = ms
		}
	}
	if v := env[EnvVivoxSecret]; v != "" {
		c.VoiceSecret = v
	}
	if v := env[EnvVivoxIssuer]; v != "" {
		c.VoiceIssuer = v
	}
	if v := env[EnvVivoxDomain]; v != "" {
		c.VoiceDomain = v
	}
	c.normalize()
	return c
}

// StoreTimeout returns the per-call store timeout.
func (c GameConfig) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutMs) * time.Millisecond
}

func (c *GameConfig) normalize() {
	d := Defaults()
	if c.MaxCommitAttempts <= 0 {
		c.MaxCommitAttempts = d.MaxCommitAttempts
	}
	if c.StoreTimeoutMs <= 0 {
		c.StoreTimeoutMs = d.StoreTimeoutMs
	}
	if c.RoomStore != StorePostgres {
		c.RoomStore = StoreNakama
	}
}
