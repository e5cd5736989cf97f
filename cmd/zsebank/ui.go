package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/shubham-patill/Stock-Exchange-Bank/internal/game"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptConfirm(label string) (bool, error) {
	choice, err := promptChoice(label, []string{"yes", "no"}, "no")
	if err != nil {
		return false, err
	}
	return choice == "yes", nil
}

func promptInt(label string, min, max int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min || v > max {
			printWarn(fmt.Sprintf("Value must be between %d and %d", min, max))
			continue
		}
		return v, nil
	}
}

func promptInt64(label string, min int64) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min {
			printWarn(fmt.Sprintf("Value must be >= %d", min))
			continue
		}
		return v, nil
	}
}

// promptRupees reads a rupee amount and returns paise.
func promptRupees(label string) (int64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid amount.")
			continue
		}
		if v <= 0 {
			printWarn("Amount must be > 0")
			continue
		}
		return game.RupeesToPaise(v), nil
	}
}

// promptSecret reads without echo so the code never lands in the terminal
// scrollback. The gate is advisory only.
func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func formatPaise(v int64) string {
	return money.New(v, money.INR).Display()
}

func signedPaise(v int64) string {
	if v > 0 {
		return "+" + formatPaise(v)
	}
	return formatPaise(v)
}

func colorizePaise(v int64) string {
	text := signedPaise(v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func trendMarker(t game.PriceTrend) string {
	switch t {
	case game.TrendUp:
		return success.Sprint("▲")
	case game.TrendDown:
		return danger.Sprint("▼")
	case game.TrendUnchanged:
		return accent.Sprint("•")
	default:
		return " "
	}
}

func renderCompanies(companies []game.Company) {
	accent.Println("\n== MARKET ==")
	fmt.Printf("%-16s %14s %12s %s\n", "COMPANY", "PRICE", "AVAILABLE", "")
	for _, c := range companies {
		fmt.Printf("%-16s %14s %12d %s\n", c.Name, formatPaise(c.PricePaise), c.AvailableShares, trendMarker(c.Trend))
	}
}

func renderPlayers(players []game.Player) {
	accent.Println("\n== PLAYERS ==")
	fmt.Printf("%-4s %-24s %16s\n", "ID", "NAME", "BALANCE")
	for _, p := range players {
		fmt.Printf("%-4d %-24s %16s\n", p.ID, p.Name, formatPaise(p.BalancePaise))
	}
}

func renderHoldings(name string, holdings []game.HoldingView) {
	accent.Printf("\n== %s: HOLDINGS ==\n", strings.ToUpper(name))
	if len(holdings) == 0 {
		printInfo("No shares owned.")
		return
	}
	fmt.Printf("%-16s %10s %14s %16s\n", "COMPANY", "QTY", "PRICE", "VALUE")
	var total int64
	for _, h := range holdings {
		fmt.Printf("%-16s %10d %14s %16s\n", h.Company, h.Quantity, formatPaise(h.PricePaise), formatPaise(h.ValuePaise))
		total += h.ValuePaise
	}
	fmt.Printf("%-16s %10s %14s %16s\n", "TOTAL", "", "", formatPaise(total))
}

func renderTransactions(p game.Player) {
	accent.Printf("\n== %s: TRANSACTIONS ==\n", strings.ToUpper(p.Name))
	if len(p.Transactions) == 0 {
		printInfo("No transactions yet.")
		return
	}
	// Newest first, matching the player card view.
	for i := len(p.Transactions) - 1; i >= 0; i-- {
		tx := p.Transactions[i]
		amount := formatPaise(tx.AmountPaise)
		switch tx.Type {
		case game.TxDebit:
			amount = danger.Sprint("-" + amount)
		case game.TxCredit, game.TxLoanMaturity:
			amount = success.Sprint("+" + amount)
		default:
			amount = neutral.Sprint(amount)
		}
		fmt.Printf("%-8s %18s  %s  %s\n", strings.ToUpper(string(tx.Type)), amount, tx.Timestamp.Format("15:04:05"), tx.Description)
	}
}

func renderPriceChanges(bank *game.Bank) {
	accent.Println("\n== PRICE CHANGES ==")
	for _, c := range bank.Companies() {
		changes, err := bank.PriceChanges(c.Name)
		if err != nil {
			continue
		}
		fmt.Printf("\n%s\n", c.Name)
		for _, ch := range changes {
			if ch.Initial {
				fmt.Printf("  %14s  %s  start\n", formatPaise(ch.PricePaise), ch.At.Format("15:04:05"))
				continue
			}
			fmt.Printf("  %14s  %s  %s\n", formatPaise(ch.PricePaise), ch.At.Format("15:04:05"), colorizePaise(ch.DeltaPaise))
		}
	}
}

func renderLeaderboard(rows []game.LeaderboardRow) {
	accent.Println("\n== LEADERBOARD ==")
	fmt.Printf("%-5s %-24s %16s %16s %16s\n", "RANK", "PLAYER", "CASH", "HOLDINGS", "TOTAL")
	for _, row := range rows {
		fmt.Printf("%-5d %-24s %16s %16s %16s\n", row.Rank, row.Name, formatPaise(row.CashPaise), formatPaise(row.HoldingsPaise), formatPaise(row.TotalPaise))
	}
}

func renderPlan(plan game.RightIssuePlan, lot int64) {
	accent.Println("\n== RIGHT ISSUE PLAN ==")
	fmt.Printf("Discount price:        %s\n", formatPaise(plan.DiscountPricePaise))
	fmt.Printf("Buy now:               %d shares (lot %d)\n", plan.BuyNow, lot)
	fmt.Printf("Next right issue:      %d shares\n", plan.NextRightIssue)
	if plan.BuyNow == 0 {
		printInfo("Budget does not cover a full lot at these terms.")
	}
}
