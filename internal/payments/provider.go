package payments

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway outcome statuses.
const (
	OutcomeAuthorized = "AUTHORIZED"
	OutcomeDeclined   = "DECLINED"
)

// Intent is a started gateway transaction the buyer must complete on the
// provider's page.
type Intent struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// Outcome is the gateway's final word on a transaction.
type Outcome struct {
	Status            string `json:"status"`
	OrderRef          string `json:"order_ref"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
}

// Authorized reports whether the gateway accepted the payment.
func (o *Outcome) Authorized() bool {
	return o.Status == OutcomeAuthorized
}

// Provider abstracts the payment gateway. Implementations must be safe
// for concurrent use.
type Provider interface {
	// CreateIntent starts a transaction for the given amount. orderRef is
	// echoed back in the commit outcome.
	CreateIntent(ctx context.Context, amount decimal.Decimal, orderRef, returnURL string) (*Intent, error)

	// Commit finalizes the transaction identified by token and returns
	// the gateway's decision.
	Commit(ctx context.Context, token string) (*Outcome, error)
}
