package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/shubham-patill/Stock-Exchange-Bank/internal/game"
)

type Config struct {
	Game      GameConfig      `toml:"game"`
	Log       LogConfig       `toml:"log"`
	Companies []CompanyConfig `toml:"companies"`
}

type GameConfig struct {
	MinPlayers         int   `toml:"min_players"`
	MaxPlayers         int   `toml:"max_players"`
	StartingCashRupees int64 `toml:"starting_cash"`
	LotSize            int64 `toml:"lot_size"`
	LSMPayoutRupees    int64 `toml:"lsm_payout"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type CompanyConfig struct {
	Name   string  `toml:"name"`
	Price  float64 `toml:"price"`
	Shares int64   `toml:"shares"`
}

func Default() Config {
	cfg := Config{
		Game: GameConfig{
			MinPlayers:         game.MinPlayerCount,
			MaxPlayers:         game.MaxPlayerCount,
			StartingCashRupees: game.DefaultStartingCashPaise / game.PaisePerRupee,
			LotSize:            game.DefaultLotSize,
			LSMPayoutRupees:    game.DefaultLSMPayoutPaise / game.PaisePerRupee,
		},
		Log: LogConfig{Level: slog.LevelInfo},
	}
	for _, seed := range game.DefaultCompanySeeds() {
		cfg.Companies = append(cfg.Companies, CompanyConfig{
			Name:   seed.Name,
			Price:  game.PaiseToRupees(seed.PricePaise),
			Shares: seed.AvailableShares,
		})
	}
	return cfg
}

// Load reads the TOML config at path (missing file means defaults), then
// applies ZSEBANK_* environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("open config: %w", err)
			}
		} else {
			defer file.Close()
			if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
				return cfg, fmt.Errorf("decode config: %w", err)
			}
		}
	}

	cfg.Game.StartingCashRupees = envInt64Default("ZSEBANK_STARTING_CASH", cfg.Game.StartingCashRupees)
	cfg.Game.LotSize = envInt64Default("ZSEBANK_LOT_SIZE", cfg.Game.LotSize)
	cfg.Game.LSMPayoutRupees = envInt64Default("ZSEBANK_LSM_PAYOUT", cfg.Game.LSMPayoutRupees)
	cfg.Log.Level = envLevelDefault("ZSEBANK_LOG_LEVEL", cfg.Log.Level)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Game.MinPlayers < 1 || c.Game.MaxPlayers < c.Game.MinPlayers {
		return fmt.Errorf("invalid player count bounds %d..%d", c.Game.MinPlayers, c.Game.MaxPlayers)
	}
	if c.Game.StartingCashRupees <= 0 {
		return fmt.Errorf("starting cash must be > 0")
	}
	if c.Game.LotSize <= 0 {
		return fmt.Errorf("lot size must be > 0")
	}
	if len(c.Companies) == 0 {
		return fmt.Errorf("at least one company is required")
	}
	seen := make(map[string]struct{}, len(c.Companies))
	for _, co := range c.Companies {
		name := strings.ToLower(strings.TrimSpace(co.Name))
		if name == "" {
			return fmt.Errorf("company name is required")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate company %q", co.Name)
		}
		seen[name] = struct{}{}
		if co.Price < 0 {
			return fmt.Errorf("company %q: price must be >= 0", co.Name)
		}
		if co.Shares <= 0 {
			return fmt.Errorf("company %q: shares must be > 0", co.Name)
		}
	}
	return nil
}

func (c Config) Rules() game.Rules {
	return game.Rules{
		MinPlayers:        c.Game.MinPlayers,
		MaxPlayers:        c.Game.MaxPlayers,
		StartingCashPaise: c.Game.StartingCashRupees * game.PaisePerRupee,
		LotSize:           c.Game.LotSize,
		LSMPayoutPaise:    c.Game.LSMPayoutRupees * game.PaisePerRupee,
	}
}

func (c Config) Seeds() []game.CompanySeed {
	out := make([]game.CompanySeed, 0, len(c.Companies))
	for _, co := range c.Companies {
		out = append(out, game.CompanySeed{
			Name:            strings.TrimSpace(co.Name),
			PricePaise:      game.RupeesToPaise(co.Price),
			AvailableShares: co.Shares,
		})
	}
	return out
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envLevelDefault(key string, fallback slog.Level) slog.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return level
}
