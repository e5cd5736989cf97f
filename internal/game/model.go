package game

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	PaisePerRupee = int64(100)

	DefaultStartingCashPaise = int64(600_000) * PaisePerRupee
	DefaultLotSize           = int64(1000)
	DefaultLSMPayoutPaise    = int64(100_000) * PaisePerRupee

	MinPlayerCount = 2
	MaxPlayerCount = 6

	// Percentage cash operations settle in multiples of Rs 5,000; a raw
	// amount below one step is rejected outright.
	percentStepPaise = int64(5_000) * PaisePerRupee

	// Right-issue prices round up to the next multiple of Rs 5.
	rightIssueStepPaise = int64(5) * PaisePerRupee

	secretCodeLength = 4
)

var (
	ErrWrongPhase           = errors.New("operation not allowed in current game phase")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientShares   = errors.New("not enough shares available")
	ErrInsufficientHoldings = errors.New("player does not hold enough shares")
	ErrBelowMinimumLot      = errors.New("quantity below minimum lot")
	ErrNoHoldings           = errors.New("player holds no shares of this company")
	ErrExceedsRightIssue    = errors.New("quantity exceeds right-issue entitlement")
	ErrBelowThreshold       = errors.New("amount below minimum threshold")
	ErrDebentureIneligible  = errors.New("debenture requires a zero share price")
	ErrNothingToSuspend     = errors.New("no price change to suspend")
	ErrOnboardingIncomplete = errors.New("not all players acknowledged their code")
)

func RupeesToPaise(v float64) int64 {
	return int64(math.Round(v * float64(PaisePerRupee)))
}

func PaiseToRupees(v int64) float64 {
	return float64(v) / float64(PaisePerRupee)
}

// RupeeString renders a paise amount as plain rupees for transaction
// descriptions and logs. Whole-rupee amounts drop the fraction.
func RupeeString(paise int64) string {
	if paise%PaisePerRupee == 0 {
		return fmt.Sprintf("%d", paise/PaisePerRupee)
	}
	return fmt.Sprintf("%.2f", PaiseToRupees(paise))
}

// RightIssuePricePaise is half the current price rounded up to the next
// multiple of Rs 5: price 80 -> 40, price 83 -> 45.
func RightIssuePricePaise(pricePaise int64) int64 {
	half := pricePaise / 2
	if pricePaise%2 != 0 {
		half++ // carry the half paisa before snapping to the step
	}
	steps := half / rightIssueStepPaise
	if half%rightIssueStepPaise != 0 {
		steps++
	}
	return steps * rightIssueStepPaise
}

// MaxRightIssueQuantity caps a discounted purchase at half the player's
// current holdings, rounded down.
func MaxRightIssueQuantity(holdings int64) int64 {
	if holdings <= 0 {
		return 0
	}
	return holdings / 2
}

func roundToNearest(v, step int64) int64 {
	if step <= 0 {
		return v
	}
	return (v + step/2) / step * step
}

func floorToLot(v, lot int64) int64 {
	if lot <= 0 {
		return v
	}
	return v / lot * lot
}

// PlanRightIssue is the advisory calculator: given a cash budget and the
// current price, how many shares to buy now (in whole lots) and how large
// the next round's discounted entitlement would then be. It reads no game
// state and mutates nothing.
func PlanRightIssue(pricePaise, budgetPaise, lotSize int64) RightIssuePlan {
	var plan RightIssuePlan
	discount := RightIssuePricePaise(pricePaise)
	perShare := pricePaise + discount/2
	if perShare <= 0 || budgetPaise <= 0 {
		return plan
	}
	plan.BuyNow = floorToLot(budgetPaise/perShare, lotSize)
	if plan.BuyNow < 0 {
		plan.BuyNow = 0
	}
	plan.NextRightIssue = floorToLot(plan.BuyNow/2, lotSize)
	plan.DiscountPricePaise = discount
	return plan
}

func generateSecretCode() (string, error) {
	const digits = "0123456789"
	buf := make([]byte, secretCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf), nil
}

func validatePlayerName(name string) error {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return fmt.Errorf("player name is required")
	}
	if len(clean) > 24 {
		return fmt.Errorf("player name too long (max 24 chars)")
	}
	return nil
}
