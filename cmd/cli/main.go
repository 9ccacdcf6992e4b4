package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/bankline/bankline/infra/initializer"
	"github.com/bankline/bankline/pkg/analytics"
	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
	"github.com/bankline/bankline/pkg/store"
)

func main() {
	argsLen := len(os.Args)
	if argsLen < 2 {
		usage()
		return
	}
	cmd := os.Args[1]

	cfg, err := config.Load(slog.Default())
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		return
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		return
	}
	st := deps.Store
	ctx := context.Background()

	switch cmd {
	case "balance":
		printBalance(st)
	case "transactions":
		printTransactions(st.Transactions())
	case "add":
		if argsLen < 5 {
			fmt.Println("Usage: add <description> <amount> <category> [credit|debit]")
			return
		}
		amount, err := strconv.ParseFloat(os.Args[3], 64)
		if err != nil {
			color.Red("Invalid amount: %v", err)
			return
		}
		direction := domain.Debit
		if argsLen > 5 && os.Args[5] == "credit" {
			direction = domain.Credit
		}
		tx := domain.Transaction{
			ID:          uuid.NewString(),
			Description: os.Args[2],
			Amount:      amount,
			Date:        "Today",
			Category:    os.Args[4],
			Direction:   direction,
		}
		if err := st.AddTransaction(ctx, tx); err != nil {
			color.Red("Failed to add transaction: %v", err)
			return
		}
		color.Green("Added %s %.2f (%s)", tx.Description, tx.Amount, tx.Category)
		printBalance(st)
	case "convert":
		if argsLen < 5 {
			fmt.Println("Usage: convert <amount> <from> <to>")
			return
		}
		amount, err := strconv.ParseFloat(os.Args[2], 64)
		if err != nil {
			color.Red("Invalid amount: %v", err)
			return
		}
		if err := st.FetchRates(ctx); err != nil {
			color.Red("Failed to fetch rates: %v", err)
			return
		}
		rates := st.Rates()
		converted, err := exchange.Convert(amount, money.Code(os.Args[3]), money.Code(os.Args[4]), rates.Data)
		if err != nil {
			color.Red("Conversion failed: %v", err)
			return
		}
		color.Cyan("%.2f %s = %.2f %s (rates from %s)", amount, os.Args[3], converted, os.Args[4], rates.Source)
	case "forecast":
		next, err := analytics.ForecastNextMonth(st.Transactions())
		if err != nil {
			color.Red("Forecast failed: %v", err)
			return
		}
		formatted, err := money.FormatCurrency(next)
		if err != nil {
			color.Red("Forecast failed: %v", err)
			return
		}
		color.Yellow("Projected spending next month: %s", formatted)
	default:
		color.Red("Unknown command: %s", cmd)
		usage()
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  balance")
	fmt.Println("  transactions")
	fmt.Println("  add <description> <amount> <category> [credit|debit]")
	fmt.Println("  convert <amount> <from> <to>")
	fmt.Println("  forecast")
}

func printBalance(st *store.Store) {
	formatted, err := money.FormatCurrency(st.Balance())
	if err != nil {
		color.Red("Failed to format balance: %v", err)
		return
	}
	color.Green("Balance: %s", formatted)
}

func printTransactions(txs []domain.Transaction) {
	debit := color.New(color.FgRed)
	credit := color.New(color.FgGreen)
	for _, tx := range txs {
		line := fmt.Sprintf("%-12s %-24s %9.2f  %s", tx.Date, tx.Description, tx.Signed(), tx.Category)
		if tx.Direction == domain.Credit {
			credit.Println(line)
		} else {
			debit.Println(line)
		}
	}
}
