package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"courtly/internal/shared/config"
	"courtly/internal/shared/errs"
)

const transactionsPath = "/rswebpaytransaction/api/webpay/v1.2/transactions"

// WebpayProvider drives a Webpay Plus style REST gateway. Credentials go
// in headers, amounts travel as integer pesos.
type WebpayProvider struct {
	baseURL      string
	commerceCode string
	apiKey       string
	client       *http.Client
}

func NewWebpayProvider(cfg config.PaymentConfig) *WebpayProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &WebpayProvider{
		baseURL:      cfg.BaseURL,
		commerceCode: cfg.CommerceCode,
		apiKey:       cfg.APIKey,
		client:       &http.Client{Timeout: timeout},
	}
}

type webpayCreateRequest struct {
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
	ReturnURL string `json:"return_url"`
}

type webpayCreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type webpayCommitResponse struct {
	Status            string `json:"status"`
	BuyOrder          string `json:"buy_order"`
	AuthorizationCode string `json:"authorization_code"`
	ResponseCode      int    `json:"response_code"`
}

func (p *WebpayProvider) CreateIntent(ctx context.Context, amount decimal.Decimal, orderRef, returnURL string) (*Intent, error) {
	payload := webpayCreateRequest{
		BuyOrder:  orderRef,
		SessionID: orderRef,
		Amount:    amount.Round(0).IntPart(),
		ReturnURL: returnURL,
	}

	var created webpayCreateResponse
	if err := p.do(ctx, http.MethodPost, transactionsPath, payload, &created); err != nil {
		return nil, err
	}

	return &Intent{
		Token:       created.Token,
		RedirectURL: fmt.Sprintf("%s?token_ws=%s", created.URL, created.Token),
	}, nil
}

func (p *WebpayProvider) Commit(ctx context.Context, token string) (*Outcome, error) {
	var committed webpayCommitResponse
	path := fmt.Sprintf("%s/%s", transactionsPath, token)
	if err := p.do(ctx, http.MethodPut, path, nil, &committed); err != nil {
		return nil, err
	}

	status := OutcomeDeclined
	if committed.Status == "AUTHORIZED" && committed.ResponseCode == 0 {
		status = OutcomeAuthorized
	}

	return &Outcome{
		Status:            status,
		OrderRef:          committed.BuyOrder,
		AuthorizationCode: committed.AuthorizationCode,
	}, nil
}

func (p *WebpayProvider) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode gateway request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Tbk-Api-Key-Id", p.commerceCode)
	req.Header.Set("Tbk-Api-Key-Secret", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return errs.Provider(err, "payment gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.Provider(nil, "payment gateway returned %d: %s", resp.StatusCode, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errs.Provider(err, "failed to decode gateway response")
	}
	return nil
}
