package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"courtly/internal/availability"
	"courtly/internal/bookings"
	"courtly/internal/carts"
	"courtly/internal/shared/clock"
	"courtly/internal/shared/errs"
	"courtly/pkg/logger"
)

type Service interface {
	// InitiateCheckout starts a gateway transaction for the owner's open
	// cart and returns the redirect the client must follow.
	InitiateCheckout(ctx context.Context, ownerID uuid.UUID) (*CheckoutResponse, error)

	// ConfirmPayment reconciles the gateway's decision for the token:
	// authorized carts promote their holds to confirmed bookings, declined
	// carts are torn down so the slots free up immediately.
	ConfirmPayment(ctx context.Context, token string) (*PaymentResultResponse, error)
}

type service struct {
	repo      Repository
	provider  Provider
	notifier  bookings.Notifier
	availSvc  availability.Service
	clock     clock.Clock
	returnURL string
	log       *logger.Logger
}

func NewService(repo Repository, provider Provider, notifier bookings.Notifier, availSvc availability.Service, clk clock.Clock, returnURL string) Service {
	if notifier == nil {
		notifier = bookings.NopNotifier{}
	}
	return &service{
		repo:      repo,
		provider:  provider,
		notifier:  notifier,
		availSvc:  availSvc,
		clock:     clk,
		returnURL: returnURL,
		log:       logger.GetDefault(),
	}
}

func (s *service) InitiateCheckout(ctx context.Context, ownerID uuid.UUID) (*CheckoutResponse, error) {
	cart, err := s.repo.GetOpenCartWithHolds(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Validation("there is no open cart to pay")
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(cart.Holds) == 0 {
		return nil, errs.Validation("the cart is empty")
	}

	// Catch lapsed holds before bothering the gateway. The commit
	// transaction re-checks, this is the cheap early exit.
	now := s.clock.Now()
	for _, h := range cart.Holds {
		if h.Expired(now) {
			if err := s.repo.AbortCart(ctx, cart.ID); err != nil {
				return nil, fmt.Errorf("failed to abort expired cart: %w", err)
			}
			s.invalidateCourts(ctx, cart)
			return nil, errs.Expired("the held slots expired before checkout")
		}
	}

	intent, err := s.provider.CreateIntent(ctx, cart.Total(), cart.ID.String(), s.returnURL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveToken(ctx, cart.ID, intent.Token); err != nil {
		return nil, fmt.Errorf("failed to store payment token: %w", err)
	}

	return &CheckoutResponse{
		CartID:      cart.ID,
		Token:       intent.Token,
		RedirectURL: intent.RedirectURL,
		Amount:      cart.Total(),
	}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, token string) (*PaymentResultResponse, error) {
	cart, err := s.repo.GetCartByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("no cart matches this payment token")
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	// A duplicate gateway callback lands here after the first one settled
	// the cart.
	if cart.Paid {
		s.log.LogPaymentOutcome(ctx, cart.ID.String(), ResultAlreadyProcessed)
		return &PaymentResultResponse{Status: ResultAlreadyProcessed, CartID: cart.ID}, nil
	}

	// A gateway failure mid-confirm releases the holds rather than leaving
	// them in an ambiguous pending state.
	outcome, err := s.provider.Commit(ctx, token)
	if err != nil {
		if abortErr := s.repo.AbortCart(ctx, cart.ID); abortErr != nil {
			return nil, fmt.Errorf("failed to release cart after gateway failure: %w", abortErr)
		}
		s.invalidateCourts(ctx, cart)
		s.log.LogPaymentOutcome(ctx, cart.ID.String(), ResultDeclined)
		return nil, err
	}

	if !outcome.Authorized() {
		if err := s.repo.AbortCart(ctx, cart.ID); err != nil {
			return nil, fmt.Errorf("failed to release declined cart: %w", err)
		}
		s.invalidateCourts(ctx, cart)
		s.log.LogPaymentOutcome(ctx, cart.ID.String(), ResultDeclined)
		return &PaymentResultResponse{Status: ResultDeclined, CartID: cart.ID}, nil
	}

	promoted, err := s.repo.CommitCart(ctx, cart.ID, s.clock.Now())
	if err != nil {
		if errors.Is(err, ErrAlreadyPaid) {
			s.log.LogPaymentOutcome(ctx, cart.ID.String(), ResultAlreadyProcessed)
			return &PaymentResultResponse{Status: ResultAlreadyProcessed, CartID: cart.ID}, nil
		}
		var expired *errs.ExpiredError
		if errors.As(err, &expired) {
			s.invalidateCourts(ctx, cart)
		}
		return nil, err
	}

	s.invalidateCourts(ctx, cart)

	responses := make([]bookings.BookingResponse, len(promoted))
	for i := range promoted {
		responses[i] = promoted[i].ToResponse()
		if err := s.notifier.BookingConfirmed(ctx, &promoted[i]); err != nil {
			s.log.ErrorWithContext(ctx, "payment confirmation notification failed", err, map[string]interface{}{
				"booking_id": promoted[i].ID.String(),
			})
		}
	}

	s.log.LogPaymentOutcome(ctx, cart.ID.String(), ResultApproved)
	return &PaymentResultResponse{
		Status:   ResultApproved,
		CartID:   cart.ID,
		Bookings: responses,
	}, nil
}

func (s *service) invalidateCourts(ctx context.Context, cart *carts.Cart) {
	seen := make(map[uuid.UUID]bool)
	for _, h := range cart.Holds {
		if !seen[h.CourtID] {
			seen[h.CourtID] = true
			s.availSvc.Invalidate(ctx, h.CourtID)
		}
	}
}
