package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SIPCompare/internal/display"
)

// InstrumentConfig describes one compared asset.
type InstrumentConfig struct {
	Symbol     string  `yaml:"symbol"`
	Name       string  `yaml:"name"`
	Multiplier float64 `yaml:"multiplier"`
	// DatasetPath points at a JSON dataset on disk; empty means the bundled one.
	DatasetPath string `yaml:"dataset_path"`
	Bundled     string `yaml:"bundled"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Instruments struct {
		Primary   InstrumentConfig `yaml:"primary"`
		Benchmark InstrumentConfig `yaml:"benchmark"`
	} `yaml:"instruments"`
	Plan struct {
		DefaultAmount float64 `yaml:"default_amount"`
		DefaultMonths int     `yaml:"default_months"`
		MaxMonths     int     `yaml:"max_months"`
		AmountMin     float64 `yaml:"amount_min"`
		AmountMax     float64 `yaml:"amount_max"`
		AmountStep    float64 `yaml:"amount_step"`
	} `yaml:"plan"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("SOL_DATASET"); v != "" {
		cfg.Instruments.Primary.DatasetPath = v
	}
	if v := os.Getenv("NIFTY_DATASET"); v != "" {
		cfg.Instruments.Benchmark.DatasetPath = v
	}
	if v := os.Getenv("DEFAULT_AMOUNT"); v != "" {
		var amount float64
		if _, err := fmt.Sscanf(v, "%f", &amount); err == nil {
			cfg.Plan.DefaultAmount = amount
		}
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		cfg.Schedule.DigestCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost"}
	}

	p := &cfg.Instruments.Primary
	if p.Symbol == "" {
		p.Symbol = "SOL"
	}
	if p.Name == "" {
		p.Name = "Solana"
	}
	if p.Multiplier == 0 {
		p.Multiplier = display.SolMultiplier
	}
	if p.Bundled == "" {
		p.Bundled = "sol.json"
	}

	b := &cfg.Instruments.Benchmark
	if b.Symbol == "" {
		b.Symbol = "NIFTY"
	}
	if b.Name == "" {
		b.Name = "Nifty"
	}
	if b.Multiplier == 0 {
		b.Multiplier = display.NiftyMultiplier
	}
	if b.Bundled == "" {
		b.Bundled = "nifty.json"
	}

	if cfg.Plan.DefaultAmount == 0 {
		cfg.Plan.DefaultAmount = 1000
	}
	if cfg.Plan.DefaultMonths == 0 {
		cfg.Plan.DefaultMonths = 1
	}
	if cfg.Plan.MaxMonths == 0 {
		cfg.Plan.MaxMonths = 40
	}
	if cfg.Plan.AmountMin == 0 {
		cfg.Plan.AmountMin = display.DefaultSlider.AmountMin
	}
	if cfg.Plan.AmountMax == 0 {
		cfg.Plan.AmountMax = display.DefaultSlider.AmountMax
	}
	if cfg.Plan.AmountStep == 0 {
		cfg.Plan.AmountStep = display.DefaultSlider.AmountStep
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 9 1 * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/sipcompare.db"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Instruments.Primary.Symbol == c.Instruments.Benchmark.Symbol {
		return fmt.Errorf("instruments.primary and instruments.benchmark must differ")
	}
	if c.Instruments.Primary.Multiplier <= 0 {
		return fmt.Errorf("instruments.primary.multiplier must be positive")
	}
	if c.Instruments.Benchmark.Multiplier <= 0 {
		return fmt.Errorf("instruments.benchmark.multiplier must be positive")
	}
	if c.Plan.MaxMonths < 1 {
		return fmt.Errorf("plan.max_months must be at least 1")
	}
	if c.Plan.AmountMin <= 0 {
		return fmt.Errorf("plan.amount_min must be positive")
	}
	if c.Plan.AmountMax < c.Plan.AmountMin || c.Plan.AmountMax > display.MaxAmount {
		return fmt.Errorf("plan.amount_max must be within %v..%v", c.Plan.AmountMin, display.MaxAmount)
	}
	if c.Plan.AmountStep <= 0 {
		return fmt.Errorf("plan.amount_step must be positive")
	}
	if !c.Slider().Contains(c.Plan.DefaultAmount) {
		return fmt.Errorf("plan.default_amount must be within %v..%v", c.Plan.AmountMin, c.Plan.AmountMax)
	}
	if c.Plan.DefaultMonths < 1 || c.Plan.DefaultMonths > c.Plan.MaxMonths {
		return fmt.Errorf("plan.default_months must be within 1..%d", c.Plan.MaxMonths)
	}
	return nil
}

// Slider returns the configured amount slider.
func (c *Config) Slider() display.Slider {
	return display.Slider{
		AmountMin:  c.Plan.AmountMin,
		AmountMax:  c.Plan.AmountMax,
		AmountStep: c.Plan.AmountStep,
	}
}
