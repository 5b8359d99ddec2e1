// Package payment gates order placement. The production system talks to a
// real processor; this simulator reproduces its contract, including the
// synthetic decline conditions used by the demo checkout.
package payment

import (
	"context"
	"strings"

	"gourmetgo/internal/model"

	"github.com/rs/zerolog"
)

// Payment methods accepted at checkout.
const (
	MethodCreditCard = "credit-card"
	MethodJazzCash   = "jazzcash"
	MethodCash       = "cash"
)

// Details carries the checkout payment fields. Field names follow the
// checkout form payload.
type Details struct {
	Method         string `json:"method"`
	CardNumber     string `json:"cardNumber,omitempty"`
	JazzCashNumber string `json:"jazzcashNumber,omitempty"`
	JazzCashCNIC   string `json:"jazzcashCNIC,omitempty"`
}

// Gateway authorises a payment before an order is created. A decline is
// returned as a domain error and must leave no side effects.
type Gateway interface {
	Charge(ctx context.Context, details Details, amount float64) error
}

// Synthetic decline triggers.
const (
	declinedCardSuffix = "0000"
	declinedWallet     = "03000000000"
)

// Simulator is the inline payment gate used outside production.
type Simulator struct {
	logger zerolog.Logger
}

// NewSimulator creates the simulated gateway.
func NewSimulator(logger zerolog.Logger) *Simulator {
	return &Simulator{logger: logger.With().Str("gateway", "payment-simulator").Logger()}
}

// Charge declines cards ending in the fixed suffix and the sentinel wallet
// number; everything else is approved.
func (s *Simulator) Charge(ctx context.Context, details Details, amount float64) error {
	switch details.Method {
	case MethodCreditCard:
		if strings.HasSuffix(strings.ReplaceAll(details.CardNumber, " ", ""), declinedCardSuffix) {
			s.logger.Info().Float64("amount", amount).Msg("card payment declined")
			return model.NewDomainError(model.ErrCodePaymentDeclined,
				"Payment was declined by the bank. Please check your card details.")
		}
	case MethodJazzCash:
		if details.JazzCashNumber == declinedWallet {
			s.logger.Info().Float64("amount", amount).Msg("wallet payment declined")
			return model.NewDomainError(model.ErrCodePaymentDeclined,
				"Payment was declined by the mobile wallet provider. Please check your account details.")
		}
	}
	return nil
}
