package game

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCompanySeeds is the stock list the game ships with; config can
// replace it.
func DefaultCompanySeeds() []CompanySeed {
	seed := []struct {
		Name  string
		Price int64
	}{
		{"SunPharma", 25},
		{"ICICI Bank", 35},
		{"Tisco", 40},
		{"Adani", 55},
		{"Reliance", 70},
		{"TCS", 80},
	}
	out := make([]CompanySeed, 0, len(seed))
	for _, row := range seed {
		out = append(out, CompanySeed{
			Name:            row.Name,
			PricePaise:      row.Price * PaisePerRupee,
			AvailableShares: 200_000,
		})
	}
	return out
}

// Bank owns the canonical players and companies for one table session.
// Every operation validates first and applies under the lock, so a failed
// call leaves the state exactly as it found it.
type Bank struct {
	mu    sync.Mutex
	log   *slog.Logger
	rules Rules
	seeds []CompanySeed

	phase     Phase
	players   []Player
	companies []Company
}

func NewBank(rules Rules, seeds []CompanySeed, logger *slog.Logger) *Bank {
	if logger == nil {
		logger = slog.Default()
	}
	if rules.MinPlayers <= 0 {
		rules = DefaultRules()
	}
	if len(seeds) == 0 {
		seeds = DefaultCompanySeeds()
	}
	return &Bank{
		log:   logger,
		rules: rules,
		seeds: seeds,
		phase: PhaseNotStarted,
	}
}

func (b *Bank) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

func (b *Bank) Rules() Rules {
	return b.rules
}

// StartGame moves the table from not-started to onboarding: players are
// created with the starting balance, one initial credit transaction and a
// fresh secret code each, and the company list is reseeded.
func (b *Bank) StartGame(playerCount int, startingCashPaise int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseNotStarted {
		return ErrWrongPhase
	}
	if playerCount < b.rules.MinPlayers || playerCount > b.rules.MaxPlayers {
		return fmt.Errorf("player count must be between %d and %d", b.rules.MinPlayers, b.rules.MaxPlayers)
	}
	if startingCashPaise <= 0 {
		return fmt.Errorf("starting cash must be > 0")
	}

	now := time.Now()
	players := make([]Player, 0, playerCount)
	for i := 1; i <= playerCount; i++ {
		code, err := generateSecretCode()
		if err != nil {
			return err
		}
		players = append(players, Player{
			ID:           i,
			Name:         fmt.Sprintf("Player %d", i),
			BalancePaise: startingCashPaise,
			Holdings:     map[string]int64{},
			SecretCode:   code,
			Transactions: []Transaction{{
				ID:          uuid.NewString(),
				Type:        TxCredit,
				AmountPaise: startingCashPaise,
				Timestamp:   now,
				Description: "Initial balance",
			}},
		})
	}

	companies := make([]Company, 0, len(b.seeds))
	for _, seed := range b.seeds {
		companies = append(companies, Company{
			Name:            seed.Name,
			PricePaise:      seed.PricePaise,
			AvailableShares: seed.AvailableShares,
			PriceHistory:    []PricePoint{{PricePaise: seed.PricePaise, At: now}},
		})
	}

	b.players = players
	b.companies = companies
	b.phase = PhaseOnboarding
	b.log.Info("game started", "players", playerCount, "starting_cash", RupeeString(startingCashPaise))
	return nil
}

func (b *Bank) SetPlayerName(playerID int, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase == PhaseNotStarted {
		return ErrWrongPhase
	}
	if err := validatePlayerName(name); err != nil {
		return err
	}
	p, err := b.findPlayer(playerID)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	return nil
}

func (b *Bank) AcknowledgeCode(playerID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseOnboarding {
		return ErrWrongPhase
	}
	p, err := b.findPlayer(playerID)
	if err != nil {
		return err
	}
	p.CodeAcknowledged = true
	return nil
}

// CompleteOnboarding flips the table to active once every player has
// acknowledged noting their code.
func (b *Bank) CompleteOnboarding() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseOnboarding {
		return ErrWrongPhase
	}
	for _, p := range b.players {
		if !p.CodeAcknowledged {
			return ErrOnboardingIncomplete
		}
	}
	b.phase = PhaseActive
	b.log.Info("onboarding complete")
	return nil
}

// Reset discards all players and companies; the next StartGame reseeds
// everything, including secret codes.
func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.players = nil
	b.companies = nil
	b.phase = PhaseNotStarted
	b.log.Info("game reset")
}

func (b *Bank) Players() []Player {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Player, 0, len(b.players))
	for i := range b.players {
		out = append(out, clonePlayer(b.players[i]))
	}
	return out
}

func (b *Bank) PlayerByID(playerID int) (Player, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.findPlayer(playerID)
	if err != nil {
		return Player{}, err
	}
	return clonePlayer(*p), nil
}

func (b *Bank) Companies() []Company {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Company, 0, len(b.companies))
	for i := range b.companies {
		out = append(out, cloneCompany(b.companies[i]))
	}
	return out
}

func (b *Bank) CompanyByName(name string) (Company, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.findCompany(name)
	if err != nil {
		return Company{}, err
	}
	return cloneCompany(*c), nil
}

// Buy purchases quantity shares at the current price. Whole lots only,
// capped by the bank's available pool and the player's balance.
func (b *Bank) Buy(playerID int, company string, quantity int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, c, err := b.activePair(playerID, company)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}
	if quantity < b.rules.LotSize {
		return ErrBelowMinimumLot
	}
	if quantity > c.AvailableShares {
		return ErrInsufficientShares
	}
	cost := quantity * c.PricePaise
	if cost > p.BalancePaise {
		return ErrInsufficientBalance
	}

	p.BalancePaise -= cost
	p.Holdings[c.Name] += quantity
	c.AvailableShares -= quantity
	b.appendTxn(p, TxDebit, cost, fmt.Sprintf("Bought %d shares of %s at Rs %s", quantity, c.Name, RupeeString(c.PricePaise)))
	b.log.Info("shares bought", "player", p.Name, "company", c.Name, "quantity", quantity, "cost", RupeeString(cost))
	return nil
}

// Sell returns quantity shares to the bank pool at the current price.
func (b *Bank) Sell(playerID int, company string, quantity int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, c, err := b.activePair(playerID, company)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}
	if quantity < b.rules.LotSize {
		return ErrBelowMinimumLot
	}
	if quantity > p.Holdings[c.Name] {
		return ErrInsufficientHoldings
	}
	value := quantity * c.PricePaise

	p.BalancePaise += value
	p.Holdings[c.Name] -= quantity
	c.AvailableShares += quantity
	b.appendTxn(p, TxCredit, value, fmt.Sprintf("Sold %d shares of %s at Rs %s", quantity, c.Name, RupeeString(c.PricePaise)))
	b.log.Info("shares sold", "player", p.Name, "company", c.Name, "quantity", quantity, "value", RupeeString(value))
	return nil
}

// RightIssueTerms reports the discounted price and maximum quantity the
// player's current holdings entitle them to.
func (b *Bank) RightIssueTerms(playerID int, company string) (RightIssueTerms, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, c, err := b.activePair(playerID, company)
	if err != nil {
		return RightIssueTerms{}, err
	}
	return RightIssueTerms{
		PricePaise:  RightIssuePricePaise(c.PricePaise),
		MaxQuantity: MaxRightIssueQuantity(p.Holdings[c.Name]),
	}, nil
}

// RightIssue is a follow-on purchase open only to existing holders. With
// the discount the price is halved and rounded up to the nearest Rs 5 and
// the quantity is capped at half the current holdings; without it the
// ordinary buy terms apply.
func (b *Bank) RightIssue(playerID int, company string, quantity int64, usesDiscount bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, c, err := b.activePair(playerID, company)
	if err != nil {
		return err
	}
	held := p.Holdings[c.Name]
	if held <= 0 {
		return ErrNoHoldings
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}
	price := c.PricePaise
	if usesDiscount {
		if quantity > MaxRightIssueQuantity(held) {
			return ErrExceedsRightIssue
		}
		price = RightIssuePricePaise(c.PricePaise)
	}
	if quantity < b.rules.LotSize {
		return ErrBelowMinimumLot
	}
	if quantity > c.AvailableShares {
		return ErrInsufficientShares
	}
	cost := quantity * price
	if cost > p.BalancePaise {
		return ErrInsufficientBalance
	}

	p.BalancePaise -= cost
	p.Holdings[c.Name] += quantity
	c.AvailableShares -= quantity
	b.appendTxn(p, TxDebit, cost, fmt.Sprintf("Right issue: bought %d shares of %s at Rs %s", quantity, c.Name, RupeeString(price)))
	b.log.Info("right issue executed", "player", p.Name, "company", c.Name, "quantity", quantity, "price", RupeeString(price), "discounted", usesDiscount)
	return nil
}

// Debenture lets a holder liquidate a company whose price has hit zero at
// the company's first recorded price. The holding is cleared entirely and
// the shares return to the bank pool.
func (b *Bank) Debenture(playerID int, company string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, c, err := b.activePair(playerID, company)
	if err != nil {
		return 0, err
	}
	if c.PricePaise != 0 {
		return 0, ErrDebentureIneligible
	}
	held := p.Holdings[c.Name]
	if held <= 0 {
		return 0, ErrNoHoldings
	}
	issuePrice := c.PriceHistory[0].PricePaise
	payout := held * issuePrice

	p.BalancePaise += payout
	delete(p.Holdings, c.Name)
	c.AvailableShares += held
	b.appendTxn(p, TxCredit, payout, fmt.Sprintf("Debenture: redeemed %d shares of %s at issue price Rs %s", held, c.Name, RupeeString(issuePrice)))
	b.log.Info("debenture redeemed", "player", p.Name, "company", c.Name, "shares", held, "payout", RupeeString(payout))
	return payout, nil
}

// Deposit credits an arbitrary positive amount to the player.
func (b *Bank) Deposit(playerID int, amountPaise int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.activePlayer(playerID)
	if err != nil {
		return err
	}
	if amountPaise <= 0 {
		return fmt.Errorf("amount must be > 0")
	}
	p.BalancePaise += amountPaise
	b.appendTxn(p, TxCredit, amountPaise, fmt.Sprintf("Added Rs %s", RupeeString(amountPaise)))
	return nil
}

// Withdraw debits an arbitrary positive amount; the balance never goes
// below zero, so an oversized debit is rejected outright.
func (b *Bank) Withdraw(playerID int, amountPaise int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.activePlayer(playerID)
	if err != nil {
		return err
	}
	if amountPaise <= 0 {
		return fmt.Errorf("amount must be > 0")
	}
	if amountPaise > p.BalancePaise {
		return ErrInsufficientBalance
	}
	p.BalancePaise -= amountPaise
	b.appendTxn(p, TxDebit, amountPaise, fmt.Sprintf("Subtracted Rs %s", RupeeString(amountPaise)))
	return nil
}

// LoanStockMatured credits the fixed LSM payout.
func (b *Bank) LoanStockMatured(playerID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.activePlayer(playerID)
	if err != nil {
		return err
	}
	p.BalancePaise += b.rules.LSMPayoutPaise
	b.appendTxn(p, TxLoanMaturity, b.rules.LSMPayoutPaise, "Loan stock matured")
	b.log.Info("loan stock matured", "player", p.Name, "payout", RupeeString(b.rules.LSMPayoutPaise))
	return nil
}

// ResetBalance restores the player's cash to their initial credit amount.
// Holdings and the transaction log are untouched; the reset itself is
// recorded as a transaction.
func (b *Bank) ResetBalance(playerID int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.activePlayer(playerID)
	if err != nil {
		return err
	}
	initial := b.rules.StartingCashPaise
	for _, tx := range p.Transactions {
		if tx.Type == TxCredit {
			initial = tx.AmountPaise
			break
		}
	}
	p.BalancePaise = initial
	b.appendTxn(p, TxReset, initial, "Balance reset to initial amount")
	b.log.Info("balance reset", "player", p.Name, "balance", RupeeString(initial))
	return nil
}

// PercentageCash moves a percentage of the player's balance in or out,
// rounded to the nearest Rs 5,000. Amounts that round from below Rs 5,000
// are rejected as below threshold.
func (b *Bank) PercentageCash(playerID int, direction CashDirection, percent int) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.activePlayer(playerID)
	if err != nil {
		return 0, err
	}
	if percent <= 0 || percent > 100 {
		return 0, fmt.Errorf("percent must be between 1 and 100")
	}
	if direction != CashDeposit && direction != CashWithdraw {
		return 0, fmt.Errorf("direction must be deposit or withdraw")
	}
	raw := p.BalancePaise * int64(percent) / 100
	if raw < percentStepPaise {
		return 0, ErrBelowThreshold
	}
	amount := roundToNearest(raw, percentStepPaise)

	switch direction {
	case CashDeposit:
		p.BalancePaise += amount
		b.appendTxn(p, TxCredit, amount, fmt.Sprintf("%d%% deposit of Rs %s", percent, RupeeString(amount)))
	case CashWithdraw:
		if amount > p.BalancePaise {
			return 0, ErrInsufficientBalance
		}
		p.BalancePaise -= amount
		b.appendTxn(p, TxDebit, amount, fmt.Sprintf("%d%% withdrawal of Rs %s", percent, RupeeString(amount)))
	}
	b.log.Info("percentage cash op", "player", p.Name, "direction", string(direction), "percent", percent, "amount", RupeeString(amount))
	return amount, nil
}

// AdjustPrice applies a signed delta to the company price, clamped at
// zero, and appends the resulting price to the history.
func (b *Bank) AdjustPrice(company string, deltaPaise int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseActive {
		return ErrWrongPhase
	}
	c, err := b.findCompany(company)
	if err != nil {
		return err
	}
	if deltaPaise == 0 {
		return fmt.Errorf("price delta must be non-zero")
	}
	next := c.PricePaise + deltaPaise
	if next < 0 {
		next = 0
	}
	c.PricePaise = next
	c.PriceHistory = append(c.PriceHistory, PricePoint{PricePaise: next, At: time.Now()})
	c.LastDeltaPaise = deltaPaise
	if deltaPaise > 0 {
		c.Trend = TrendUp
	} else {
		c.Trend = TrendDown
	}
	b.log.Info("price adjusted", "company", c.Name, "delta", RupeeString(deltaPaise), "price", RupeeString(next))
	return nil
}

// SuspendLastChange re-applies the negated last delta. The history is
// never truncated: the suspension is recorded as a fresh entry, not a
// rollback.
func (b *Bank) SuspendLastChange(company string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseActive {
		return ErrWrongPhase
	}
	c, err := b.findCompany(company)
	if err != nil {
		return err
	}
	if c.LastDeltaPaise == 0 {
		return ErrNothingToSuspend
	}
	next := c.PricePaise - c.LastDeltaPaise
	if next < 0 {
		next = 0
	}
	c.PricePaise = next
	c.PriceHistory = append(c.PriceHistory, PricePoint{PricePaise: next, At: time.Now()})
	c.LastDeltaPaise = 0
	c.Trend = TrendUnchanged
	b.log.Info("price change suspended", "company", c.Name, "price", RupeeString(next))
	return nil
}

// FinalizePriceRound marks every company that saw no explicit change this
// round as unchanged, closing out the manage-prices session.
func (b *Bank) FinalizePriceRound() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.companies {
		if b.companies[i].Trend == "" {
			b.companies[i].Trend = TrendUnchanged
		}
	}
}

// PriceChanges flattens a company's history into table rows: the initial
// price plus every non-zero movement.
func (b *Bank) PriceChanges(company string) ([]PriceChange, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := b.findCompany(company)
	if err != nil {
		return nil, err
	}
	out := make([]PriceChange, 0, len(c.PriceHistory))
	for i, entry := range c.PriceHistory {
		if i == 0 {
			out = append(out, PriceChange{PricePaise: entry.PricePaise, Initial: true, At: entry.At})
			continue
		}
		delta := entry.PricePaise - c.PriceHistory[i-1].PricePaise
		if delta == 0 {
			continue
		}
		out = append(out, PriceChange{PricePaise: entry.PricePaise, DeltaPaise: delta, At: entry.At})
	}
	return out, nil
}

// Holdings lists the player's non-zero positions valued at current prices.
func (b *Bank) Holdings(playerID int) ([]HoldingView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.findPlayer(playerID)
	if err != nil {
		return nil, err
	}
	out := make([]HoldingView, 0, len(p.Holdings))
	for i := range b.companies {
		c := &b.companies[i]
		qty := p.Holdings[c.Name]
		if qty <= 0 {
			continue
		}
		out = append(out, HoldingView{
			Company:    c.Name,
			Quantity:   qty,
			PricePaise: c.PricePaise,
			ValuePaise: qty * c.PricePaise,
		})
	}
	return out, nil
}

// Leaderboard ranks players by total wealth: cash plus holdings valued at
// current prices.
func (b *Bank) Leaderboard() []LeaderboardRow {
	b.mu.Lock()
	defer b.mu.Unlock()

	prices := make(map[string]int64, len(b.companies))
	for _, c := range b.companies {
		prices[c.Name] = c.PricePaise
	}
	rows := make([]LeaderboardRow, 0, len(b.players))
	for _, p := range b.players {
		var holdings int64
		for name, qty := range p.Holdings {
			holdings += qty * prices[name]
		}
		rows = append(rows, LeaderboardRow{
			PlayerID:      p.ID,
			Name:          p.Name,
			CashPaise:     p.BalancePaise,
			HoldingsPaise: holdings,
			TotalPaise:    p.BalancePaise + holdings,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalPaise > rows[j].TotalPaise })
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func (b *Bank) findPlayer(playerID int) (*Player, error) {
	for i := range b.players {
		if b.players[i].ID == playerID {
			return &b.players[i], nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (b *Bank) findCompany(name string) (*Company, error) {
	clean := strings.TrimSpace(name)
	for i := range b.companies {
		if strings.EqualFold(b.companies[i].Name, clean) {
			return &b.companies[i], nil
		}
	}
	return nil, ErrCompanyNotFound
}

func (b *Bank) activePlayer(playerID int) (*Player, error) {
	if b.phase != PhaseActive {
		return nil, ErrWrongPhase
	}
	return b.findPlayer(playerID)
}

func (b *Bank) activePair(playerID int, company string) (*Player, *Company, error) {
	if b.phase != PhaseActive {
		return nil, nil, ErrWrongPhase
	}
	p, err := b.findPlayer(playerID)
	if err != nil {
		return nil, nil, err
	}
	c, err := b.findCompany(company)
	if err != nil {
		return nil, nil, err
	}
	return p, c, nil
}

func (b *Bank) appendTxn(p *Player, typ TransactionType, amountPaise int64, description string) {
	p.Transactions = append(p.Transactions, Transaction{
		ID:          uuid.NewString(),
		Type:        typ,
		AmountPaise: amountPaise,
		Timestamp:   time.Now(),
		Description: description,
	})
}

func clonePlayer(p Player) Player {
	out := p
	out.Holdings = make(map[string]int64, len(p.Holdings))
	for k, v := range p.Holdings {
		out.Holdings[k] = v
	}
	out.Transactions = append([]Transaction(nil), p.Transactions...)
	return out
}

func cloneCompany(c Company) Company {
	out := c
	out.PriceHistory = append([]PricePoint(nil), c.PriceHistory...)
	return out
}
