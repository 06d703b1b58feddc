// Package payment values contributions in Bitcoin and settles them through
// a simulated payment channel.
package payment

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// walletPattern restricts addresses to alphanumeric characters.
var walletPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidateWalletAddress reports whether an address looks like a Bitcoin
// wallet: 25 to 34 characters, a 1, 3, or bc1 prefix, alphanumeric only.
func ValidateWalletAddress(address string) bool {
	if len(address) < 25 || len(address) > 34 {
		return false
	}
	if address[0] != '1' && address[0] != '3' && !strings.HasPrefix(address, "bc1") {
		return false
	}
	return walletPattern.MatchString(address)
}

// FormatAmount renders a BTC amount with eight decimal places, one per
// satoshi.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.8f", amount)
}

// ComputeAmount prices a contribution: composite score times line count
// times the per-line base rate.
func ComputeAmount(composite float64, lines int, baseRate float64) float64 {
	return composite * float64(lines) * baseRate
}

// Transaction is one payment sent through the channel.
type Transaction struct {
	ID                string    `json:"id"`
	SourceWallet      string    `json:"sourceWallet"`
	DestinationWallet string    `json:"destinationWallet"`
	Amount            float64   `json:"amount"`
	ContributionID    string    `json:"contributionId"`
	Timestamp         time.Time `json:"timestamp"`
	Verified          bool      `json:"verified"`
}

// Sender simulates a Bitcoin payment channel. Send blocks for the configured
// network delay and honors context cancellation, so callers control how long
// they are willing to wait.
type Sender struct {
	mu           sync.Mutex
	transactions []Transaction
	delay        time.Duration
}

// NewSender creates a sender with the given simulated network delay.
func NewSender(delay time.Duration) *Sender {
	return &Sender{delay: delay}
}

// Send validates the wallets and amount, waits out the simulated network
// delay, then records the transaction as verified. A canceled context
// abandons the payment and nothing is recorded.
func (s *Sender) Send(ctx context.Context, sourceWallet, destinationWallet string, amount float64, contributionID string) (Transaction, error) {
	if !ValidateWalletAddress(sourceWallet) {
		return Transaction{}, fmt.Errorf("invalid source wallet address %q", sourceWallet)
	}
	if !ValidateWalletAddress(destinationWallet) {
		return Transaction{}, fmt.Errorf("invalid destination wallet address %q", destinationWallet)
	}
	if amount <= 0 {
		return Transaction{}, fmt.Errorf("payment amount must be greater than zero")
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Transaction{}, fmt.Errorf("payment abandoned: %w", ctx.Err())
		case <-timer.C:
		}
	}

	tx := Transaction{
		ID:                uuid.New().String(),
		SourceWallet:      sourceWallet,
		DestinationWallet: destinationWallet,
		Amount:            amount,
		ContributionID:    contributionID,
		Timestamp:         time.Now().UTC(),
		Verified:          true,
	}

	s.mu.Lock()
	s.transactions = append(s.transactions, tx)
	s.mu.Unlock()

	return tx, nil
}

// Verify reports whether a transaction with the given ID settled.
func (s *Sender) Verify(transactionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.ID == transactionID {
			return tx.Verified
		}
	}
	return false
}

// Transactions returns a copy of every recorded transaction.
func (s *Sender) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// TransactionsFor returns the transactions recorded for one contribution.
func (s *Sender) TransactionsFor(contributionID string) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Transaction
	for _, tx := range s.transactions {
		if tx.ContributionID == contributionID {
			out = append(out, tx)
		}
	}
	return out
}

// Manager accumulates payments per contributor against a project wallet.
type Manager struct {
	walletAddress string
	payments      map[string]float64
}

// NewManager creates a manager paying out of the given wallet.
func NewManager(walletAddress string) (*Manager, error) {
	if !ValidateWalletAddress(walletAddress) {
		return nil, fmt.Errorf("invalid Bitcoin wallet address %q", walletAddress)
	}
	return &Manager{
		walletAddress: walletAddress,
		payments:      make(map[string]float64),
	}, nil
}

// Record adds an amount to a contributor's running total.
func (m *Manager) Record(contributor string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("payment amount must be greater than zero")
	}
	m.payments[contributor] += amount
	return nil
}

// TotalFor returns the accumulated total for a contributor, 0.0 if none.
func (m *Manager) TotalFor(contributor string) float64 {
	return m.payments[contributor]
}

// Report renders the accumulated payments as a text report.
func (m *Manager) Report() string {
	var b strings.Builder
	b.WriteString("Payment Report\n")
	b.WriteString("==============\n\n")
	fmt.Fprintf(&b, "Wallet Address: %s\n\n", m.walletAddress)
	b.WriteString("Contributor Payments:\n")

	contributors := make([]string, 0, len(m.payments))
	for name := range m.payments {
		contributors = append(contributors, name)
	}
	sort.Strings(contributors)

	var total float64
	for _, name := range contributors {
		amount := m.payments[name]
		fmt.Fprintf(&b, "%s: %s BTC\n", name, FormatAmount(amount))
		total += amount
	}

	fmt.Fprintf(&b, "\nTotal Payments: %s BTC\n", FormatAmount(total))
	return b.String()
}
