package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotcommander/codecred/internal/config"
	"github.com/dotcommander/codecred/internal/discovery"
	"github.com/dotcommander/codecred/internal/ledger"
	"github.com/dotcommander/codecred/internal/manifest"
	"github.com/dotcommander/codecred/internal/metrics"
	"github.com/dotcommander/codecred/internal/payment"
)

// sourceWallet is the placeholder wallet payments are drawn from when the
// manifest does not name one.
const sourceWallet = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

// networkDelay is the simulated settlement time per payment.
const networkDelay = 2 * time.Second

var contributor string

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage the contribution ledger",
	Long: `Ledger records which contributor owns which line ranges of which
files, scores those ranges, and values them in simulated Bitcoin.`,
}

var ledgerRegisterCmd = &cobra.Command{
	Use:   "register <file> <start-line> <end-line>",
	Short: "Register and score a contribution",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		startLine, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid start line %q", args[1])
		}
		endLine, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid end line %q", args[2])
		}

		code, err := discovery.LoadRange(args[0], startLine, endLine, cfg.MaxFileSize)
		if err != nil {
			return err
		}

		c, err := ledger.NewContribution(contributor, args[0], startLine, endLine)
		if err != nil {
			return err
		}
		for _, e := range metrics.NewEngine().WithParallel(cfg.Parallel).EvaluateAll(code) {
			c.AddEvaluation(e)
		}

		store, err := ledger.OpenStore(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.LoadLedger(cmd.Context())
		if err != nil {
			return err
		}
		if err := l.Register(c); err != nil {
			return err
		}
		if err := store.SaveContribution(cmd.Context(), c); err != nil {
			return err
		}

		if !cfg.Quiet {
			fmt.Printf("Registered %s lines %d-%d for %s: composite %.2f (%s)\n",
				c.FileID, c.StartLine, c.EndLine, c.Contributor,
				c.Value(), metrics.LabelFromScore(c.Value()))
		}
		return nil
	},
}

var ledgerReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the payment report for all contributions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		store, err := ledger.OpenStore(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.LoadLedger(cmd.Context())
		if err != nil {
			return err
		}

		wallet, baseRate, _ := projectWallet(cfg)
		manager, err := payment.NewManager(wallet)
		if err != nil {
			return err
		}
		for _, c := range l.Contributions() {
			amount := payment.ComputeAmount(c.Value(), c.Lines(), baseRate)
			if amount <= 0 {
				continue
			}
			if err := manager.Record(c.Contributor, amount); err != nil {
				return err
			}
		}

		fmt.Print(manager.Report())
		return nil
	},
}

var ledgerPayCmd = &cobra.Command{
	Use:   "pay",
	Short: "Settle contribution payouts through the payment channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		m, err := manifest.Load(cfg.Manifest)
		if err != nil {
			return fmt.Errorf("a valid manifest is required to pay: %w", err)
		}
		if !m.Valid() {
			return fmt.Errorf("manifest license is invalid")
		}
		baseRate := cfg.BaseRate
		if m.BaseRate > 0 {
			baseRate = m.BaseRate
		}

		wallets := make(map[string]string, len(m.Contributors))
		for _, entry := range m.Contributors {
			wallets[entry.Name] = entry.Wallet
		}

		store, err := ledger.OpenStore(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer store.Close()

		l, err := store.LoadLedger(cmd.Context())
		if err != nil {
			return err
		}

		sender := payment.NewSender(networkDelay)
		for _, c := range l.Contributions() {
			amount := payment.ComputeAmount(c.Value(), c.Lines(), baseRate)
			if amount <= 0 {
				continue
			}

			destination := wallets[c.Contributor]
			if destination == "" {
				destination = m.Wallet
			}

			tx, err := sender.Send(cmd.Context(), m.Wallet, destination, amount, c.ID)
			if err != nil {
				return fmt.Errorf("payment for %s failed: %w", c.Contributor, err)
			}

			record := ledger.PaymentRecord{
				ID:          tx.ID,
				Contributor: c.Contributor,
				Wallet:      destination,
				Amount:      amount,
				TxID:        tx.ID,
				CreatedAt:   tx.Timestamp,
			}
			if err := store.SavePayment(cmd.Context(), record); err != nil {
				return err
			}

			if !cfg.Quiet {
				fmt.Printf("Payment of %s BTC successfully sent to %s\n",
					payment.FormatAmount(amount), destination)
			}
		}
		return nil
	},
}

// projectWallet resolves the payout wallet and base rate, falling back to
// the placeholder wallet when no manifest is readable.
func projectWallet(cfg *config.Config) (wallet string, baseRate float64, fromManifest bool) {
	wallet = sourceWallet
	baseRate = cfg.BaseRate

	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return wallet, baseRate, false
	}
	if m.Wallet != "" {
		wallet = m.Wallet
	}
	if m.BaseRate > 0 {
		baseRate = m.BaseRate
	}
	return wallet, baseRate, true
}

func init() {
	ledgerRegisterCmd.Flags().StringVarP(&contributor, "contributor", "c", "", "Contributor name (required)")
	ledgerRegisterCmd.MarkFlagRequired("contributor")

	ledgerCmd.AddCommand(ledgerRegisterCmd)
	ledgerCmd.AddCommand(ledgerReportCmd)
	ledgerCmd.AddCommand(ledgerPayCmd)
	rootCmd.AddCommand(ledgerCmd)
}
