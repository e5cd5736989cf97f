package game

import "testing"

func rupees(v int64) int64 {
	return v * PaisePerRupee
}

func TestRightIssuePricePaise(t *testing.T) {
	tests := []struct {
		price int64
		want  int64
	}{
		{price: rupees(80), want: rupees(40)},
		{price: rupees(83), want: rupees(45)},
		{price: rupees(25), want: rupees(15)},
		{price: rupees(7), want: rupees(5)},
		{price: rupees(5), want: rupees(5)},
		{price: 0, want: 0},
	}
	for _, tc := range tests {
		got := RightIssuePricePaise(tc.price)
		if got != tc.want {
			t.Fatalf("price=%d got=%d want=%d", tc.price, got, tc.want)
		}
		if got%(5*PaisePerRupee) != 0 {
			t.Fatalf("price=%d: discount %d is not a multiple of Rs 5", tc.price, got)
		}
	}
}

func TestMaxRightIssueQuantity(t *testing.T) {
	tests := []struct {
		holdings int64
		want     int64
	}{
		{holdings: 1200, want: 600},
		{holdings: 1201, want: 600},
		{holdings: 1, want: 0},
		{holdings: 0, want: 0},
		{holdings: -5, want: 0},
	}
	for _, tc := range tests {
		if got := MaxRightIssueQuantity(tc.holdings); got != tc.want {
			t.Fatalf("holdings=%d got=%d want=%d", tc.holdings, got, tc.want)
		}
	}
}

func TestRoundToNearest(t *testing.T) {
	step := percentStepPaise
	tests := []struct {
		v    int64
		want int64
	}{
		{v: 1_230_000, want: 1_000_000},
		{v: 1_250_000, want: 1_500_000},
		{v: 6_000_000, want: 6_000_000},
		{v: 499_999, want: 500_000},
	}
	for _, tc := range tests {
		if got := roundToNearest(tc.v, step); got != tc.want {
			t.Fatalf("v=%d got=%d want=%d", tc.v, got, tc.want)
		}
	}
}

func TestPlanRightIssue(t *testing.T) {
	// Price 80 discounts to 40, so every planned share ties up 80 + 20.
	plan := PlanRightIssue(rupees(80), rupees(600_000), 1000)
	if plan.DiscountPricePaise != rupees(40) {
		t.Fatalf("discount got=%d want=%d", plan.DiscountPricePaise, rupees(40))
	}
	if plan.BuyNow != 6000 {
		t.Fatalf("buy now got=%d want=6000", plan.BuyNow)
	}
	if plan.NextRightIssue != 3000 {
		t.Fatalf("next right issue got=%d want=3000", plan.NextRightIssue)
	}

	small := PlanRightIssue(rupees(80), rupees(50_000), 1000)
	if small.BuyNow != 0 || small.NextRightIssue != 0 {
		t.Fatalf("expected empty plan below one lot, got %+v", small)
	}

	if zero := PlanRightIssue(0, rupees(1000), 1000); zero.BuyNow != 0 {
		t.Fatalf("expected empty plan for zero price, got %+v", zero)
	}
}

func TestGenerateSecretCode(t *testing.T) {
	code, err := generateSecretCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != secretCodeLength {
		t.Fatalf("code %q has length %d, want %d", code, len(code), secretCodeLength)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains non-digit %q", code, r)
		}
	}
}

func TestRupeeString(t *testing.T) {
	if got := RupeeString(rupees(45)); got != "45" {
		t.Fatalf("got %q want %q", got, "45")
	}
	if got := RupeeString(4150); got != "41.50" {
		t.Fatalf("got %q want %q", got, "41.50")
	}
}

func TestValidatePlayerName(t *testing.T) {
	if err := validatePlayerName("Asha"); err != nil {
		t.Fatalf("expected valid name: %v", err)
	}
	if err := validatePlayerName("   "); err == nil {
		t.Fatalf("expected blank name to fail")
	}
	if err := validatePlayerName("this name is far far too long"); err == nil {
		t.Fatalf("expected oversized name to fail")
	}
}
