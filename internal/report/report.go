// Package report writes the end-game results to a JSON file so the table
// has a record after the in-memory state is discarded.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shubham-patill/Stock-Exchange-Bank/internal/game"
)

type Result struct {
	EndedAt   time.Time             `json:"ended_at"`
	Standings []game.LeaderboardRow `json:"standings"`
	Companies []CompanySummary      `json:"companies"`
}

type CompanySummary struct {
	Name            string `json:"name"`
	FinalPricePaise int64  `json:"final_price_paise"`
	PriceChanges    int    `json:"price_changes"`
}

func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".zsebank")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Write saves the result as an indented JSON file under the zsebank home
// directory and returns the path written.
func Write(res Result) (string, error) {
	dir, err := BaseDir()
	if err != nil {
		return "", err
	}
	return WriteTo(dir, res)
}

func WriteTo(dir string, res Result) (string, error) {
	if res.EndedAt.IsZero() {
		res.EndedAt = time.Now()
	}
	body, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("results-%s.json", res.EndedAt.Format("20060102-150405")))
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Build snapshots the bank's leaderboard and company states into a result.
func Build(bank *game.Bank) Result {
	res := Result{
		EndedAt:   time.Now(),
		Standings: bank.Leaderboard(),
	}
	for _, c := range bank.Companies() {
		res.Companies = append(res.Companies, CompanySummary{
			Name:            c.Name,
			FinalPricePaise: c.PricePaise,
			PriceChanges:    len(c.PriceHistory) - 1,
		})
	}
	return res
}
