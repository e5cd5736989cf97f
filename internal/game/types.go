package game

import "time"

type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseOnboarding Phase = "onboarding"
	PhaseActive     Phase = "active"
)

type TransactionType string

const (
	TxCredit       TransactionType = "credit"
	TxDebit        TransactionType = "debit"
	TxLoanMaturity TransactionType = "loan_maturity"
	TxReset        TransactionType = "reset"
)

type CashDirection string

const (
	CashDeposit  CashDirection = "deposit"
	CashWithdraw CashDirection = "withdraw"
)

type PriceTrend string

const (
	TrendUp        PriceTrend = "up"
	TrendDown      PriceTrend = "down"
	TrendUnchanged PriceTrend = "unchanged"
)

// Transaction is one immutable entry in a player's append-only ledger.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	AmountPaise int64           `json:"amount_paise"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}

type Player struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	BalancePaise     int64            `json:"balance_paise"`
	Holdings         map[string]int64 `json:"holdings"`
	Transactions     []Transaction    `json:"transactions"`
	SecretCode       string           `json:"secret_code"`
	CodeAcknowledged bool             `json:"code_acknowledged"`
}

type PricePoint struct {
	PricePaise int64     `json:"price_paise"`
	At         time.Time `json:"at"`
}

type Company struct {
	Name            string       `json:"name"`
	PricePaise      int64        `json:"price_paise"`
	AvailableShares int64        `json:"available_shares"`
	PriceHistory    []PricePoint `json:"price_history"`

	// Trend and LastDeltaPaise back the manage-prices panel: the trend
	// marker since the last finalized round, and the delta a suspend
	// would negate.
	Trend          PriceTrend `json:"trend,omitempty"`
	LastDeltaPaise int64      `json:"last_delta_paise,omitempty"`
}

// CompanySeed is the configured starting point for one company; the bank
// regenerates companies from seeds on every game start.
type CompanySeed struct {
	Name            string
	PricePaise      int64
	AvailableShares int64
}

// Rules are the table rules for a session, fixed at bank construction.
type Rules struct {
	MinPlayers        int
	MaxPlayers        int
	StartingCashPaise int64
	LotSize           int64
	LSMPayoutPaise    int64
}

func DefaultRules() Rules {
	return Rules{
		MinPlayers:        MinPlayerCount,
		MaxPlayers:        MaxPlayerCount,
		StartingCashPaise: DefaultStartingCashPaise,
		LotSize:           DefaultLotSize,
		LSMPayoutPaise:    DefaultLSMPayoutPaise,
	}
}

// RightIssueTerms is the discounted offer shown to a holder: the rounded
// price and the maximum quantity their holdings entitle them to.
type RightIssueTerms struct {
	PricePaise  int64 `json:"price_paise"`
	MaxQuantity int64 `json:"max_quantity"`
}

// RightIssuePlan is the advisory planner output; see PlanRightIssue.
type RightIssuePlan struct {
	BuyNow             int64 `json:"buy_now"`
	NextRightIssue     int64 `json:"next_right_issue"`
	DiscountPricePaise int64 `json:"discount_price_paise"`
}

// PriceChange is one row of the price-changes table: a recorded price and
// its delta against the previous entry. The initial entry has no delta.
type PriceChange struct {
	PricePaise int64     `json:"price_paise"`
	DeltaPaise int64     `json:"delta_paise"`
	Initial    bool      `json:"initial"`
	At         time.Time `json:"at"`
}

type HoldingView struct {
	Company    string `json:"company"`
	Quantity   int64  `json:"quantity"`
	PricePaise int64  `json:"price_paise"`
	ValuePaise int64  `json:"value_paise"`
}

type LeaderboardRow struct {
	Rank          int    `json:"rank"`
	PlayerID      int    `json:"player_id"`
	Name          string `json:"name"`
	CashPaise     int64  `json:"cash_paise"`
	HoldingsPaise int64  `json:"holdings_paise"`
	TotalPaise    int64  `json:"total_paise"`
}
