package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shubham-patill/Stock-Exchange-Bank/internal/game"
	"github.com/shubham-patill/Stock-Exchange-Bank/internal/report"
)

// runSession drives the whole table session: setup, onboarding, then the
// active dashboard until reset or quit. Nothing survives the process.
func runSession(bank *game.Bank) error {
	accent.Println("\nZSE Bank")
	printInfo("All game state lives in memory for this session only.")

	for {
		switch bank.Phase() {
		case game.PhaseNotStarted:
			quit, err := setupPanel(bank)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case game.PhaseOnboarding:
			if err := onboardingPanel(bank); err != nil {
				return err
			}
		case game.PhaseActive:
			quit, err := dashboardPanel(bank)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func setupPanel(bank *game.Bank) (quit bool, err error) {
	rules := bank.Rules()
	accent.Println("\n== NEW GAME ==")

	choice, err := promptChoice("Start a new game", []string{"start", "quit"}, "start")
	if err != nil {
		return false, err
	}
	if choice == "quit" {
		return true, nil
	}

	count, err := promptInt(fmt.Sprintf("Number of players (%d-%d)", rules.MinPlayers, rules.MaxPlayers), rules.MinPlayers, rules.MaxPlayers)
	if err != nil {
		return false, err
	}

	cash := rules.StartingCashPaise
	raw, err := promptOptional(fmt.Sprintf("Starting cash in rupees [%s]", game.RupeeString(cash)))
	if err != nil {
		return false, err
	}
	if raw != "" {
		v, perr := strconv.ParseFloat(raw, 64)
		if perr != nil || v <= 0 {
			printWarn("Invalid amount, using the default.")
		} else {
			cash = game.RupeesToPaise(v)
		}
	}

	if err := bank.StartGame(count, cash); err != nil {
		printError(err.Error())
		return false, nil
	}
	printSuccess(fmt.Sprintf("Game started: %d players with %s each.", count, formatPaise(cash)))
	return false, nil
}

func onboardingPanel(bank *game.Bank) error {
	accent.Println("\n== PLAYER SETUP ==")
	printInfo("Enter each player's name, then privately note your 4-digit code.")

	for _, p := range bank.Players() {
		name, err := promptOptional(fmt.Sprintf("Name for Player %d [%s]", p.ID, p.Name))
		if err != nil {
			return err
		}
		if name != "" {
			if err := bank.SetPlayerName(p.ID, name); err != nil {
				printWarn(err.Error())
			}
		}
	}

	for _, p := range bank.Players() {
		printInfo(fmt.Sprintf("\nPass the terminal to %s.", p.Name))
		if _, err := promptOptional("Press Enter to reveal your secret code"); err != nil {
			return err
		}
		accent.Printf("Secret code: %s\n", p.SecretCode)
		if _, err := promptOptional("Press Enter once you have noted it"); err != nil {
			return err
		}
		// Scroll the code out of sight before the next player takes over.
		fmt.Print(strings.Repeat("\n", 30))
		if err := bank.AcknowledgeCode(p.ID); err != nil {
			return err
		}
	}

	if err := bank.CompleteOnboarding(); err != nil {
		printError(err.Error())
		return nil
	}
	printSuccess("All players ready. Opening the dashboard.")
	return nil
}

func dashboardPanel(bank *game.Bank) (quit bool, err error) {
	renderCompanies(bank.Companies())
	renderPlayers(bank.Players())

	choice, err := promptChoice("Panel", []string{"cash", "shares", "prices", "changes", "holdings", "history", "board", "end", "reset", "quit"}, "shares")
	if err != nil {
		return false, err
	}

	switch choice {
	case "cash":
		return false, cashPanel(bank)
	case "shares":
		return false, sharesPanel(bank)
	case "prices":
		return false, pricesPanel(bank)
	case "changes":
		renderPriceChanges(bank)
	case "holdings":
		p, ok, err := selectPlayer(bank)
		if err != nil || !ok {
			return false, err
		}
		holdings, err := bank.Holdings(p.ID)
		if err != nil {
			printError(err.Error())
			return false, nil
		}
		renderHoldings(p.Name, holdings)
	case "history":
		return false, historyPanel(bank)
	case "board":
		renderLeaderboard(bank.Leaderboard())
	case "end":
		return false, endGamePanel(bank)
	case "reset":
		ok, err := promptConfirm("Start a new game? This resets all players, balances and holdings")
		if err != nil {
			return false, err
		}
		if ok {
			bank.Reset()
			printSuccess("Game reset.")
		}
	case "quit":
		ok, err := promptConfirm("Quit? All game state will be lost")
		if err != nil {
			return false, err
		}
		return ok, nil
	}
	return false, nil
}

func selectPlayer(bank *game.Bank) (game.Player, bool, error) {
	renderPlayers(bank.Players())
	id, err := promptInt("Player ID", 1, len(bank.Players()))
	if err != nil {
		return game.Player{}, false, err
	}
	p, err := bank.PlayerByID(id)
	if err != nil {
		printError(err.Error())
		return game.Player{}, false, nil
	}
	return p, true, nil
}

func selectCompany(bank *game.Bank) (game.Company, bool, error) {
	name, err := promptRequired("Company")
	if err != nil {
		return game.Company{}, false, err
	}
	c, err := bank.CompanyByName(name)
	if err != nil {
		printError(err.Error())
		return game.Company{}, false, nil
	}
	return c, true, nil
}

func cashPanel(bank *game.Bank) error {
	p, ok, err := selectPlayer(bank)
	if err != nil || !ok {
		return err
	}

	action, err := promptChoice("Cash action", []string{"add", "subtract", "lsm", "percent", "reset", "back"}, "add")
	if err != nil {
		return err
	}

	switch action {
	case "add":
		amount, err := promptRupees("Amount in rupees")
		if err != nil {
			return err
		}
		if err := bank.Deposit(p.ID, amount); err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("Added %s to %s.", formatPaise(amount), p.Name))
	case "subtract":
		amount, err := promptRupees("Amount in rupees")
		if err != nil {
			return err
		}
		if err := bank.Withdraw(p.ID, amount); err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("Subtracted %s from %s.", formatPaise(amount), p.Name))
	case "lsm":
		if err := bank.LoanStockMatured(p.ID); err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("Loan stock matured for %s: +%s.", p.Name, formatPaise(bank.Rules().LSMPayoutPaise)))
	case "percent":
		dir, err := promptChoice("Direction", []string{"deposit", "withdraw"}, "deposit")
		if err != nil {
			return err
		}
		pct, err := promptInt("Percent of balance", 1, 100)
		if err != nil {
			return err
		}
		amount, err := bank.PercentageCash(p.ID, game.CashDirection(dir), pct)
		if err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("%d%% %s of %s applied to %s.", pct, dir, formatPaise(amount), p.Name))
	case "reset":
		ok, err := promptConfirm(fmt.Sprintf("Reset %s's balance to the starting amount?", p.Name))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := bank.ResetBalance(p.ID); err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess("Balance reset to initial amount.")
	}
	return nil
}

func sharesPanel(bank *game.Bank) error {
	p, ok, err := selectPlayer(bank)
	if err != nil || !ok {
		return err
	}
	renderCompanies(bank.Companies())
	c, ok, err := selectCompany(bank)
	if err != nil || !ok {
		return err
	}
	printInfo(fmt.Sprintf("%s holds %d shares of %s (price %s).", p.Name, p.Holdings[c.Name], c.Name, formatPaise(c.PricePaise)))

	action, err := promptChoice("Share action", []string{"buy", "sell", "right", "debenture", "plan", "back"}, "buy")
	if err != nil {
		return err
	}

	switch action {
	case "buy":
		qty, err := promptInt64("Quantity", 1)
		if err != nil {
			return err
		}
		if err := bank.Buy(p.ID, c.Name, qty); err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("%s bought %d shares of %s for %s.", p.Name, qty, c.Name, formatPaise(qty*c.PricePaise)))
	case "sell":
		qty, err := promptInt64("Quantity", 1)
		if err != nil {
			return err
		}
		if err := bank.Sell(p.ID, c.Name, qty); err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("%s sold %d shares of %s for %s.", p.Name, qty, c.Name, formatPaise(qty*c.PricePaise)))
	case "right":
		terms, err := bank.RightIssueTerms(p.ID, c.Name)
		if err != nil {
			printError(err.Error())
			return nil
		}
		printInfo(fmt.Sprintf("Right issue at %s per share, up to %d shares (50%% of holdings).", formatPaise(terms.PricePaise), terms.MaxQuantity))
		useDiscount, err := promptChoice("Use the discounted price", []string{"yes", "no"}, "yes")
		if err != nil {
			return err
		}
		qty, err := promptInt64("Quantity", 1)
		if err != nil {
			return err
		}
		if err := bank.RightIssue(p.ID, c.Name, qty, useDiscount == "yes"); err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("Right issue executed: %s bought %d shares of %s.", p.Name, qty, c.Name))
	case "debenture":
		ok, err := promptConfirm(fmt.Sprintf("Redeem all of %s's %s shares at the issue price?", p.Name, c.Name))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		payout, err := bank.Debenture(p.ID, c.Name)
		if err != nil {
			printError(err.Error())
			return nil
		}
		printSuccess(fmt.Sprintf("Debenture redeemed: %s credited %s.", p.Name, formatPaise(payout)))
	case "plan":
		budget, err := promptRupees("Cash budget in rupees")
		if err != nil {
			return err
		}
		lot := bank.Rules().LotSize
		renderPlan(game.PlanRightIssue(c.PricePaise, budget, lot), lot)
	}
	return nil
}

func pricesPanel(bank *game.Bank) error {
	accent.Println("\n== MANAGE PRICES ==")
	for {
		renderCompanies(bank.Companies())
		name, err := promptRequired("Company (or 'done' to finish the round)")
		if err != nil {
			return err
		}
		if strings.EqualFold(name, "done") {
			bank.FinalizePriceRound()
			printSuccess("Price round finalized.")
			return nil
		}
		c, err := bank.CompanyByName(name)
		if err != nil {
			printError(err.Error())
			continue
		}

		action, err := promptChoice("Price action", []string{"up", "down", "suspend", "back"}, "up")
		if err != nil {
			return err
		}
		switch action {
		case "up", "down":
			delta, err := promptRupees("Change in rupees")
			if err != nil {
				return err
			}
			if action == "down" {
				delta = -delta
			}
			if err := bank.AdjustPrice(c.Name, delta); err != nil {
				printError(err.Error())
				continue
			}
			updated, _ := bank.CompanyByName(c.Name)
			printSuccess(fmt.Sprintf("%s price is now %s.", c.Name, formatPaise(updated.PricePaise)))
		case "suspend":
			if err := bank.SuspendLastChange(c.Name); err != nil {
				printError(err.Error())
				continue
			}
			updated, _ := bank.CompanyByName(c.Name)
			printSuccess(fmt.Sprintf("Last change suspended; %s price is back to %s.", c.Name, formatPaise(updated.PricePaise)))
		}
	}
}

func historyPanel(bank *game.Bank) error {
	p, ok, err := selectPlayer(bank)
	if err != nil || !ok {
		return err
	}
	code, err := promptSecret(fmt.Sprintf("Secret code for %s", p.Name))
	if err != nil {
		return err
	}
	if code != p.SecretCode {
		printWarn("Code does not match; history stays hidden.")
		return nil
	}
	renderTransactions(p)
	return nil
}

func endGamePanel(bank *game.Bank) error {
	renderLeaderboard(bank.Leaderboard())
	approved, err := promptConfirm("All players approve ending the game?")
	if err != nil {
		return err
	}
	if !approved {
		return nil
	}
	path, err := report.Write(report.Build(bank))
	if err != nil {
		printError(fmt.Sprintf("Could not write results: %v", err))
	} else {
		printSuccess("Final results written to " + path)
	}
	bank.Reset()
	return nil
}
