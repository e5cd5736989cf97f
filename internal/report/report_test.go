package report

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shubham-patill/Stock-Exchange-Bank/internal/game"
)

func TestWriteTo(t *testing.T) {
	res := Result{
		EndedAt: time.Date(2025, 3, 14, 21, 30, 0, 0, time.UTC),
		Standings: []game.LeaderboardRow{
			{Rank: 1, PlayerID: 2, Name: "Asha", CashPaise: 64_000_000, TotalPaise: 64_000_000},
		},
		Companies: []CompanySummary{{Name: "TCS", FinalPricePaise: 8_000, PriceChanges: 3}},
	}

	dir := t.TempDir()
	path, err := WriteTo(dir, res)
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got Result
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Standings) != 1 || got.Standings[0].Name != "Asha" {
		t.Fatalf("unexpected standings: %+v", got.Standings)
	}
	if got.Companies[0].PriceChanges != 3 {
		t.Fatalf("unexpected companies: %+v", got.Companies)
	}
}

func TestBuild(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bank := game.NewBank(game.DefaultRules(), nil, logger)
	if err := bank.StartGame(2, game.DefaultStartingCashPaise); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, p := range bank.Players() {
		if err := bank.AcknowledgeCode(p.ID); err != nil {
			t.Fatalf("ack: %v", err)
		}
	}
	if err := bank.CompleteOnboarding(); err != nil {
		t.Fatalf("onboarding: %v", err)
	}
	if err := bank.AdjustPrice("TCS", 5*game.PaisePerRupee); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	res := Build(bank)
	if len(res.Standings) != 2 {
		t.Fatalf("standings=%d want 2", len(res.Standings))
	}
	if len(res.Companies) != 6 {
		t.Fatalf("companies=%d want 6", len(res.Companies))
	}
	for _, c := range res.Companies {
		if c.Name == "TCS" && c.PriceChanges != 1 {
			t.Fatalf("TCS price changes=%d want 1", c.PriceChanges)
		}
	}
}
