package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shubham-patill/Stock-Exchange-Bank/internal/game"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Companies) != 6 {
		t.Fatalf("companies=%d want 6", len(cfg.Companies))
	}
	rules := cfg.Rules()
	if rules.StartingCashPaise != game.DefaultStartingCashPaise {
		t.Fatalf("starting cash=%d want %d", rules.StartingCashPaise, game.DefaultStartingCashPaise)
	}
	if rules.LotSize != game.DefaultLotSize {
		t.Fatalf("lot size=%d want %d", rules.LotSize, game.DefaultLotSize)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.LotSize != game.DefaultLotSize {
		t.Fatalf("expected default lot size, got %d", cfg.Game.LotSize)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
min_players = 2
max_players = 4
starting_cash = 250000
lot_size = 500
lsm_payout = 50000

[log]
level = "WARN"

[[companies]]
name = "Harbor Freight"
price = 12.5
shares = 50000

[[companies]]
name = "Lakeside Mills"
price = 40.0
shares = 80000
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.MaxPlayers != 4 {
		t.Fatalf("max players=%d want 4", cfg.Game.MaxPlayers)
	}
	if cfg.Log.Level != slog.LevelWarn {
		t.Fatalf("level=%v want warn", cfg.Log.Level)
	}
	seeds := cfg.Seeds()
	if len(seeds) != 2 {
		t.Fatalf("seeds=%d want 2", len(seeds))
	}
	if seeds[0].PricePaise != 1250 {
		t.Fatalf("price=%d want 1250 paise", seeds[0].PricePaise)
	}
	rules := cfg.Rules()
	if rules.StartingCashPaise != 250_000*game.PaisePerRupee {
		t.Fatalf("starting cash=%d", rules.StartingCashPaise)
	}
	if rules.LotSize != 500 {
		t.Fatalf("lot size=%d want 500", rules.LotSize)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ZSEBANK_STARTING_CASH", "750000")
	t.Setenv("ZSEBANK_LOT_SIZE", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.StartingCashRupees != 750_000 {
		t.Fatalf("starting cash=%d want 750000", cfg.Game.StartingCashRupees)
	}
	if cfg.Game.LotSize != game.DefaultLotSize {
		t.Fatalf("bad env value should fall back to default, got %d", cfg.Game.LotSize)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	bad := Default()
	bad.Game.LotSize = 0
	if err := bad.validate(); err == nil {
		t.Fatalf("expected zero lot size to fail")
	}

	dup := Default()
	dup.Companies = append(dup.Companies, CompanyConfig{Name: "tcs", Price: 10, Shares: 100})
	if err := dup.validate(); err == nil {
		t.Fatalf("expected duplicate company to fail")
	}

	empty := Default()
	empty.Companies = nil
	if err := empty.validate(); err == nil {
		t.Fatalf("expected empty company list to fail")
	}
}
