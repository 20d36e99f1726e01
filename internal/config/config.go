package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/hangman-backend/internal/apperror"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
)

type Config struct {
	LogLevel      string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort      string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort    string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	QuestionsPath string `yaml:"questions-path" env:"QUESTIONS_PATH" env-default:""`
	Assets        Assets `yaml:"assets"`
	Game          Game   `yaml:"game"`
	Redis         Redis  `yaml:"redis"`
}

type Assets struct {
	Dir        string `yaml:"dir" env:"ASSETS_DIR" env-default:"./assets"`
	URLPrefix  string `yaml:"url-prefix" env-default:"/assets/"`
	Win        string `yaml:"win" env-default:"applause.mp3"`
	Background string `yaml:"background" env-default:"background_music.mp3"`
	Warning    string `yaml:"warning" env-default:"warning.mp3"`
}

// Game - rules left out of the file keep their defaults; an explicit 0 is kept as 0.
type Game struct {
	SecondsPerLetter *int  `yaml:"seconds-per-letter"`
	WarningThreshold *int  `yaml:"warning-threshold"`
	HitPoints        *int  `yaml:"hit-points"`
	MissPenalty      *int  `yaml:"miss-penalty"`
	Seed             int64 `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Game.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Rules - game rules, with the defaults for anything left unset.
func (that *Game) Rules() entity.Rules {
	rules := entity.DefaultRules()

	if that.SecondsPerLetter != nil {
		rules.SecondsPerLetter = *that.SecondsPerLetter
	}

	if that.WarningThreshold != nil {
		rules.WarningThreshold = *that.WarningThreshold
	}

	if that.HitPoints != nil {
		rules.HitPoints = *that.HitPoints
	}

	if that.MissPenalty != nil {
		rules.MissPenalty = *that.MissPenalty
	}

	return rules
}

func (that *Game) validate() error {
	rules := that.Rules()

	switch {
	case rules.SecondsPerLetter <= 0:
		return fmt.Errorf("%w: seconds-per-letter must be positive, got %d", apperror.ErrInvalidConfig, rules.SecondsPerLetter)
	case rules.WarningThreshold < 0:
		return fmt.Errorf("%w: warning-threshold must not be negative, got %d", apperror.ErrInvalidConfig, rules.WarningThreshold)
	case rules.HitPoints < 0:
		return fmt.Errorf("%w: hit-points must not be negative, got %d", apperror.ErrInvalidConfig, rules.HitPoints)
	case rules.MissPenalty < 0:
		return fmt.Errorf("%w: miss-penalty must not be negative, got %d", apperror.ErrInvalidConfig, rules.MissPenalty)
	default:
		return nil
	}
}
