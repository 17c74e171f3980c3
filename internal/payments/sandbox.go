package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courtly/internal/shared/errs"
)

// SandboxProvider authorizes everything without leaving the process.
// Used in development and tests so checkout works with no gateway
// credentials.
type SandboxProvider struct {
	mu      sync.Mutex
	intents map[string]string // token -> orderRef
}

func NewSandboxProvider() *SandboxProvider {
	return &SandboxProvider{intents: make(map[string]string)}
}

func (p *SandboxProvider) CreateIntent(ctx context.Context, amount decimal.Decimal, orderRef, returnURL string) (*Intent, error) {
	token := uuid.NewString()

	p.mu.Lock()
	p.intents[token] = orderRef
	p.mu.Unlock()

	return &Intent{
		Token:       token,
		RedirectURL: fmt.Sprintf("%s?token_ws=%s", returnURL, token),
	}, nil
}

func (p *SandboxProvider) Commit(ctx context.Context, token string) (*Outcome, error) {
	p.mu.Lock()
	orderRef, ok := p.intents[token]
	delete(p.intents, token)
	p.mu.Unlock()

	if !ok {
		return nil, errs.Provider(nil, "unknown sandbox token %s", token)
	}

	return &Outcome{
		Status:            OutcomeAuthorized,
		OrderRef:          orderRef,
		AuthorizationCode: "SANDBOX",
	}, nil
}
