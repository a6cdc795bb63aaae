package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"rootfind/internal/rootfind"
)

// Config — полная конфигурация сервиса и CLI
type Config struct {
	Server ServerConfig `json:"server" yaml:"server"`
	Solver SolverConfig `json:"solver" yaml:"solver"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// ServerConfig — параметры HTTP-сервера
type ServerConfig struct {
	Addr         string `json:"addr" yaml:"addr" validate:"required"`
	StaticDir    string `json:"static_dir" yaml:"static_dir"`
	StreamBuffer int    `json:"stream_buffer" yaml:"stream_buffer" validate:"gte=1"`
	PlotPoints   int    `json:"plot_points" yaml:"plot_points" validate:"gte=2,lte=100000"`
	MaxRuns      int    `json:"max_runs" yaml:"max_runs" validate:"gte=1"`
}

// SolverConfig — значения по умолчанию для методов
type SolverConfig struct {
	Tol          float64 `json:"tol" yaml:"tol" validate:"gt=0"`
	MaxIter      int     `json:"max_iter" yaml:"max_iter" validate:"gt=0"`
	Step         float64 `json:"step" yaml:"step" validate:"gt=0"`
	SecantStep   float64 `json:"secant_step" yaml:"secant_step" validate:"gt=0"`
	Dx           float64 `json:"dx" yaml:"dx" validate:"gt=0"`
	Resolution   int     `json:"resolution" yaml:"resolution" validate:"gte=2"`
	GraphicalTol float64 `json:"graphical_tol" yaml:"graphical_tol" validate:"gt=0"`
	Workers      int     `json:"workers" yaml:"workers" validate:"gte=1,lte=256"`
}

// LogConfig — уровень и формат журнала
type LogConfig struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=text json"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	p := rootfind.DefaultParams()
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			StaticDir:    "static",
			StreamBuffer: 16,
			PlotPoints:   400,
			MaxRuns:      100,
		},
		Solver: SolverConfig{
			Tol:          p.Tol,
			MaxIter:      p.MaxIter,
			Step:         p.Step,
			SecantStep:   p.SecantStep,
			Dx:           p.Dx,
			Resolution:   p.Resolution,
			GraphicalTol: p.GraphicalTol,
			Workers:      p.Workers,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Params переводит настройки решателя в параметры методов
func (s SolverConfig) Params() rootfind.Params {
	return rootfind.Params{
		Tol:          s.Tol,
		MaxIter:      s.MaxIter,
		Step:         s.Step,
		SecantStep:   s.SecantStep,
		Dx:           s.Dx,
		Resolution:   s.Resolution,
		GraphicalTol: s.GraphicalTol,
		Workers:      s.Workers,
	}
}

var validate = validator.New()

// Validate проверяет значения по тегам validate
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load загружает конфигурацию с приоритетом: env > файл > значения по умолчанию
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if strings.HasSuffix(path, ".json") {
		return json.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// loadEnv применяет переменные окружения ROOTFIND_*
func loadEnv(cfg *Config) error {
	strs := map[string]*string{
		"ROOTFIND_ADDR":       &cfg.Server.Addr,
		"ROOTFIND_STATIC_DIR": &cfg.Server.StaticDir,
		"ROOTFIND_LOG_LEVEL":  &cfg.Log.Level,
		"ROOTFIND_LOG_FORMAT": &cfg.Log.Format,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	floats := map[string]*float64{
		"ROOTFIND_TOL":           &cfg.Solver.Tol,
		"ROOTFIND_STEP":          &cfg.Solver.Step,
		"ROOTFIND_SECANT_STEP":   &cfg.Solver.SecantStep,
		"ROOTFIND_DX":            &cfg.Solver.Dx,
		"ROOTFIND_GRAPHICAL_TOL": &cfg.Solver.GraphicalTol,
	}
	for key, dst := range floats {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"ROOTFIND_MAX_ITER":      &cfg.Solver.MaxIter,
		"ROOTFIND_RESOLUTION":    &cfg.Solver.Resolution,
		"ROOTFIND_WORKERS":       &cfg.Solver.Workers,
		"ROOTFIND_STREAM_BUFFER": &cfg.Server.StreamBuffer,
		"ROOTFIND_PLOT_POINTS":   &cfg.Server.PlotPoints,
		"ROOTFIND_MAX_RUNS":      &cfg.Server.MaxRuns,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = i
		}
	}
	return nil
}

// Logger строит slog.Logger по настройкам журнала
func (l LogConfig) Logger() *slog.Logger {
	var level slog.Level
	switch l.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
