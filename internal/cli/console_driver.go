package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"currency_ledger/internal/domain"
	"currency_ledger/internal/ledger"
	"currency_ledger/internal/repository"
	"currency_ledger/pkg/metrics"
	"currency_ledger/pkg/validator"
)

// ErrInvalidInput marks a raw-text parse failure at the prompt boundary.
// It is distinct from the core's validation errors: the core only ever sees
// values that already parsed.
var ErrInvalidInput = errors.New("invalid input")

var transactionTitles = []string{
	"Register Account Name",
	"Deposit Amount",
	"Withdraw Amount",
	"Currency Exchange",
	"Record Exchange Rates",
	"Show Interest Amount",
}

// Driver runs the interactive menu loop. It owns prompting, raw-text
// parsing and rendering; every semantic decision is delegated to the
// ledger service.
type Driver struct {
	service   *ledger.Service
	metrics   *metrics.Collector
	logger    *slog.Logger
	in        *bufio.Reader
	out       io.Writer
	sessionID string
}

func NewDriver(service *ledger.Service, collector *metrics.Collector, logger *slog.Logger, in io.Reader, out io.Writer) *Driver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Driver{
		service:   service,
		metrics:   collector,
		logger:    logger,
		in:        bufio.NewReader(in),
		out:       out,
		sessionID: uuid.NewString(),
	}
}

// Run processes operator transactions until the operator declines to return
// to the main menu or input ends.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.InfoContext(ctx, "Session started", slog.String("session_id", d.sessionID))

	for {
		fmt.Fprintln(d.out, "Select Transaction:")
		d.printChoices(transactionTitles)
		fmt.Fprintln(d.out)

		line, err := d.prompt("> ")
		if err != nil {
			return d.endSession(ctx, err)
		}
		choice, convErr := strconv.Atoi(line)
		if convErr != nil {
			choice = 0
		}

		fmt.Fprintln(d.out)
		if choice >= 1 && choice <= len(transactionTitles) {
			fmt.Fprintln(d.out, transactionTitles[choice-1])
		}

		if err := d.dispatch(ctx, choice); err != nil {
			return d.endSession(ctx, err)
		}

		fmt.Fprintln(d.out)
		again, err := d.confirm("Back to the Main Menu (Y/N): ")
		if err != nil {
			return d.endSession(ctx, err)
		}
		if !again {
			return d.endSession(ctx, nil)
		}
		fmt.Fprintln(d.out)
	}
}

func (d *Driver) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		return d.runRegister(ctx)
	case 2:
		return d.runDeposit(ctx)
	case 3:
		return d.runWithdraw(ctx)
	case 4:
		return d.runExchangeLoop(ctx)
	case 5:
		fmt.Fprintln(d.out)
		return d.runSetRate(ctx)
	case 6:
		return d.runInterest(ctx)
	default:
		fmt.Fprintln(d.out, "No transaction with this ID exists!")
		return nil
	}
}

func (d *Driver) runRegister(ctx context.Context) error {
	name, err := d.prompt("Account Name: ")
	if err != nil {
		return err
	}

	start := time.Now()
	_, regErr := d.service.Register(ctx, name)
	d.metrics.RecordOperation("register", time.Since(start), regErr == nil)

	if regErr != nil {
		d.reportError(regErr)
	}
	return nil
}

func (d *Driver) runDeposit(ctx context.Context) error {
	account, ok, err := d.promptAccount(ctx)
	if err != nil || !ok {
		return err
	}

	fmt.Fprintf(d.out, "Current Balance: %v\n", account.Balance)

	currency, ok, err := d.promptCurrencyCode()
	if err != nil || !ok {
		return err
	}
	fmt.Fprintln(d.out)

	amount, ok, err := d.promptFloat("Deposit Amount: ", "Deposit amount must be a floating point number!")
	if err != nil || !ok {
		return err
	}

	start := time.Now()
	balance, depErr := d.service.Deposit(ctx, account.Name, amount, currency)
	d.metrics.RecordOperation("deposit", time.Since(start), depErr == nil)

	if depErr != nil {
		d.reportError(depErr)
		return nil
	}

	d.metrics.UpdateAccountBalance(account.Name, string(account.Currency), balance)
	fmt.Fprintf(d.out, "Updated Balance: %v\n", balance)
	return nil
}

func (d *Driver) runWithdraw(ctx context.Context) error {
	account, ok, err := d.promptAccount(ctx)
	if err != nil || !ok {
		return err
	}

	fmt.Fprintf(d.out, "Current Balance: %v\n", account.Balance)

	currency, ok, err := d.promptCurrencyCode()
	if err != nil || !ok {
		return err
	}
	fmt.Fprintln(d.out)

	amount, ok, err := d.promptFloat("Withdraw Amount: ", "Withdraw amount must be a floating point number!")
	if err != nil || !ok {
		return err
	}

	start := time.Now()
	balance, wErr := d.service.Withdraw(ctx, account.Name, amount, currency)
	d.metrics.RecordOperation("withdraw", time.Since(start), wErr == nil)

	if wErr != nil {
		d.reportError(wErr)
		return nil
	}

	d.metrics.UpdateAccountBalance(account.Name, string(account.Currency), balance)
	fmt.Fprintf(d.out, "Updated Balance: %v\n", balance)
	return nil
}

func (d *Driver) runExchangeLoop(ctx context.Context) error {
	for {
		if err := d.runExchange(ctx); err != nil {
			return err
		}
		fmt.Fprintln(d.out)

		again, err := d.confirm("Convert another currency? (Y/N): ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		fmt.Fprintln(d.out)
	}
}

func (d *Driver) runExchange(ctx context.Context) error {
	fmt.Fprintln(d.out, "Source Currency Options:")
	d.printChoices(domain.Titles)
	fmt.Fprintln(d.out)

	srcIdx, ok, err := d.promptIndex("Source Currency: ")
	if err != nil || !ok {
		return err
	}

	amount, ok, err := d.promptFloat("Source Amount: ", "Amount must be a floating point number!")
	if err != nil || !ok {
		return err
	}
	fmt.Fprintln(d.out)

	fmt.Fprintln(d.out, "Exchanged Currency Options:")
	d.printChoices(domain.Titles)
	fmt.Fprintln(d.out)

	destIdx, ok, err := d.promptIndex("Exchange Currency: ")
	if err != nil || !ok {
		return err
	}

	start := time.Now()
	result, exErr := d.service.ExchangePreview(amount, srcIdx, destIdx)
	d.metrics.RecordOperation("exchange_preview", time.Since(start), exErr == nil)

	if exErr != nil {
		d.reportError(exErr)
		return nil
	}

	fmt.Fprintf(d.out, "Exchange Amount: %v\n", result)
	return nil
}

func (d *Driver) runSetRate(ctx context.Context) error {
	d.printChoices(domain.Titles[1:])
	fmt.Fprintln(d.out)

	line, err := d.prompt("Select Foreign Currency: ")
	if err != nil {
		return err
	}
	idx, convErr := strconv.Atoi(line)
	if convErr != nil || idx < 0 {
		fmt.Fprintln(d.out, "ID must be a positive whole number (integer)!")
		return nil
	}

	// The foreign list starts at position 1 of the fixed currency list, so
	// the displayed number is also the index into it. Zero lands on the
	// home currency, which the rate table rejects.
	code, codeErr := domain.CurrencyByIndex(idx)
	if codeErr != nil {
		fmt.Fprintln(d.out, "No currency with this ID exists!")
		return nil
	}

	rate, ok, err := d.promptFloat("Exchange Rate: ", "Amount must be a floating point number!")
	if err != nil || !ok {
		return err
	}

	start := time.Now()
	setErr := d.service.SetRate(ctx, code, rate)
	d.metrics.RecordOperation("set_rate", time.Since(start), setErr == nil)

	if setErr != nil {
		d.reportError(setErr)
	}
	return nil
}

func (d *Driver) runInterest(ctx context.Context) error {
	account, ok, err := d.promptAccount(ctx)
	if err != nil || !ok {
		return err
	}

	fmt.Fprintf(d.out, "Current Balance: %v\n", account.Balance)
	fmt.Fprintf(d.out, "Currency: %s\n", account.Currency)
	fmt.Fprintf(d.out, "Interest Rate: %d%%\n", int(ledger.AnnualInterestRate*100))
	fmt.Fprintln(d.out)

	line, err := d.prompt("Total Number of Days: ")
	if err != nil {
		return err
	}
	days, convErr := strconv.Atoi(line)
	if convErr != nil {
		fmt.Fprintln(d.out, "Number must be a positive whole number (integer)!")
		return nil
	}

	start := time.Now()
	schedule, projErr := d.service.ProjectInterest(ctx, account.Name, days)
	d.metrics.RecordOperation("interest_projection", time.Since(start), projErr == nil)

	if projErr != nil {
		if errors.Is(projErr, validator.ErrInvalidAmount) {
			fmt.Fprintln(d.out, "Number must be a positive whole number (integer)!")
			return nil
		}
		d.reportError(projErr)
		return nil
	}
	d.metrics.RecordProjectionHorizon(days)

	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Day | Interest | Balance |")
	for _, entry := range schedule {
		fmt.Fprintf(d.out, "%-3d | %-8.2f | %-7.2f |\n", entry.Day, entry.Interest, entry.Balance)
	}
	return nil
}

// promptAccount reads a name and resolves it; a missing account is reported
// to the operator and ends the transaction without an error.
func (d *Driver) promptAccount(ctx context.Context) (*domain.Account, bool, error) {
	name, err := d.prompt("Account Name: ")
	if err != nil {
		return nil, false, err
	}

	account, exists := d.service.Lookup(ctx, name)
	if !exists {
		fmt.Fprintln(d.out, "No account with this name exists!")
		return nil, false, nil
	}
	return account, true, nil
}

func (d *Driver) promptCurrencyCode() (domain.CurrencyCode, bool, error) {
	raw, err := d.prompt("Currency: ")
	if err != nil {
		return "", false, err
	}

	code, parseErr := domain.ParseCurrency(raw)
	if parseErr != nil {
		fmt.Fprintln(d.out, "No currency with this code exists!")
		return "", false, nil
	}
	return code, true, nil
}

// promptIndex reads a one-based menu selection and converts it to a
// zero-based position in the fixed currency list.
func (d *Driver) promptIndex(msg string) (int, bool, error) {
	line, err := d.prompt(msg)
	if err != nil {
		return 0, false, err
	}

	selection, convErr := strconv.Atoi(line)
	if convErr != nil || selection < 1 {
		fmt.Fprintln(d.out, "ID must be a positive whole number (integer)!")
		return 0, false, nil
	}
	if selection > len(domain.Codes) {
		fmt.Fprintln(d.out, "No currency with this ID exists!")
		return 0, false, nil
	}
	return selection - 1, true, nil
}

func (d *Driver) promptFloat(msg, parseMsg string) (float64, bool, error) {
	line, err := d.prompt(msg)
	if err != nil {
		return 0, false, err
	}

	value, convErr := strconv.ParseFloat(line, 64)
	if convErr != nil {
		fmt.Fprintln(d.out, parseMsg)
		return 0, false, nil
	}
	return value, true, nil
}

// confirm loops until the operator answers Y or N, case-insensitively.
func (d *Driver) confirm(msg string) (bool, error) {
	for {
		answer, err := d.prompt(msg)
		if err != nil {
			return false, err
		}

		switch strings.ToUpper(answer) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		default:
			fmt.Fprintln(d.out, "Only accepting a [Y]es or [N]o answer!")
			fmt.Fprintln(d.out)
		}
	}
}

func (d *Driver) prompt(msg string) (string, error) {
	fmt.Fprint(d.out, msg)

	line, err := d.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return strings.TrimSpace(line), nil
}

func (d *Driver) printChoices(choices []string) {
	for i, choice := range choices {
		fmt.Fprintf(d.out, "[%d] %s\n", i+1, choice)
	}
}

// reportError maps a core error kind to the operator-facing message and
// returns control to the menu.
func (d *Driver) reportError(err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		fmt.Fprintln(d.out, "An account with this name already exists!")
	case errors.Is(err, repository.ErrNotFound):
		fmt.Fprintln(d.out, "No account with this name exists!")
	case errors.Is(err, repository.ErrInsufficientFunds):
		fmt.Fprintln(d.out, "Withdraw amount must be less than the current balance!")
	case errors.Is(err, repository.ErrInvalidOperation):
		fmt.Fprintln(d.out, "The home currency rate is fixed and cannot be changed!")
	case errors.Is(err, domain.ErrUnknownCurrency):
		fmt.Fprintln(d.out, "No currency with this ID exists!")
	case errors.Is(err, validator.ErrInvalidAmount):
		fmt.Fprintln(d.out, "Amount must be a finite number!")
	case errors.Is(err, validator.ErrInvalidAccount):
		fmt.Fprintln(d.out, "Account name must not be empty!")
	default:
		fmt.Fprintf(d.out, "Transaction failed: %v\n", err)
	}

	d.logger.Warn("Transaction rejected",
		slog.String("session_id", d.sessionID),
		slog.String("error", err.Error()))
}

func (d *Driver) endSession(ctx context.Context, err error) error {
	if errors.Is(err, ErrInvalidInput) {
		// Input ended mid-prompt; treat it like an orderly exit.
		err = nil
	}
	d.logger.InfoContext(ctx, "Session ended", slog.String("session_id", d.sessionID))
	return err
}
