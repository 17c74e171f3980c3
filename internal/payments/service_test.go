package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"courtly/internal/availability"
	"courtly/internal/bookings"
	"courtly/internal/carts"
	"courtly/internal/shared/clock"
	"courtly/internal/shared/errs"
)

// fakePaymentRepo mirrors the transactional commit semantics in memory.
type fakePaymentRepo struct {
	carts    map[uuid.UUID]*carts.Cart
	holds    map[uuid.UUID]*carts.Hold
	bookings []bookings.Booking
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		carts: make(map[uuid.UUID]*carts.Cart),
		holds: make(map[uuid.UUID]*carts.Hold),
	}
}

func (f *fakePaymentRepo) cartWithHolds(cart *carts.Cart) *carts.Cart {
	copied := *cart
	copied.Holds = nil
	for _, h := range f.holds {
		if h.CartID == cart.ID {
			copied.Holds = append(copied.Holds, *h)
		}
	}
	return &copied
}

func (f *fakePaymentRepo) GetOpenCartWithHolds(ctx context.Context, ownerID uuid.UUID) (*carts.Cart, error) {
	for _, c := range f.carts {
		if c.OwnerID == ownerID && !c.Paid {
			return f.cartWithHolds(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) GetCartByToken(ctx context.Context, token string) (*carts.Cart, error) {
	for _, c := range f.carts {
		if c.PaymentToken == token {
			return f.cartWithHolds(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentRepo) SaveToken(ctx context.Context, cartID uuid.UUID, token string) error {
	c, ok := f.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.PaymentToken = token
	return nil
}

func (f *fakePaymentRepo) CommitCart(ctx context.Context, cartID uuid.UUID, now time.Time) ([]bookings.Booking, error) {
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, errs.NotFound("cart %s not found", cartID)
	}
	if cart.Paid {
		return nil, ErrAlreadyPaid
	}

	var cartHolds []*carts.Hold
	for _, h := range f.holds {
		if h.CartID == cartID {
			cartHolds = append(cartHolds, h)
		}
	}
	if len(cartHolds) == 0 {
		delete(f.carts, cartID)
		return nil, errs.Expired("the held slots expired before payment completed")
	}
	for _, h := range cartHolds {
		if h.Expired(now) {
			for _, hh := range cartHolds {
				delete(f.holds, hh.ID)
			}
			delete(f.carts, cartID)
			return nil, errs.Expired("the held slots expired before payment completed")
		}
	}

	var promoted []bookings.Booking
	for _, h := range cartHolds {
		promoted = append(promoted, bookings.Booking{
			ID:         uuid.New(),
			CourtID:    h.CourtID,
			OwnerID:    cart.OwnerID,
			OwnerEmail: cart.OwnerEmail,
			StartTime:  h.StartTime,
			EndTime:    h.EndTime,
			Status:     bookings.StatusConfirmed,
			Price:      h.Price,
		})
		delete(f.holds, h.ID)
	}
	cart.Paid = true
	f.bookings = append(f.bookings, promoted...)
	return promoted, nil
}

func (f *fakePaymentRepo) AbortCart(ctx context.Context, cartID uuid.UUID) error {
	for id, h := range f.holds {
		if h.CartID == cartID {
			delete(f.holds, id)
		}
	}
	delete(f.carts, cartID)
	return nil
}

// stubProvider returns a scripted outcome.
type stubProvider struct {
	outcome   string
	commitErr error
	commits   int
}

func (p *stubProvider) CreateIntent(ctx context.Context, amount decimal.Decimal, orderRef, returnURL string) (*Intent, error) {
	return &Intent{Token: "tok-" + orderRef, RedirectURL: returnURL + "?token_ws=tok-" + orderRef}, nil
}

func (p *stubProvider) Commit(ctx context.Context, token string) (*Outcome, error) {
	p.commits++
	if p.commitErr != nil {
		return nil, p.commitErr
	}
	return &Outcome{Status: p.outcome, OrderRef: token}, nil
}

type fakeAvailability struct {
	invalidated int
}

func (f *fakeAvailability) GetDayView(ctx context.Context, courtID uuid.UUID, date string) (*availability.DayView, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeAvailability) Invalidate(ctx context.Context, courtID uuid.UUID) {
	f.invalidated++
}

type recordingNotifier struct {
	confirmed int
}

func (n *recordingNotifier) BookingConfirmed(ctx context.Context, b *bookings.Booking) error {
	n.confirmed++
	return nil
}
func (n *recordingNotifier) BookingCancelled(ctx context.Context, b *bookings.Booking) error {
	return nil
}

type paymentFixture struct {
	svc      Service
	repo     *fakePaymentRepo
	provider *stubProvider
	clock    *clock.Fake
	notifier *recordingNotifier
	avail    *fakeAvailability
	ownerID  uuid.UUID
	courtID  uuid.UUID
}

func newPaymentFixture(t *testing.T, outcome string) *paymentFixture {
	t.Helper()

	repo := newFakePaymentRepo()
	provider := &stubProvider{outcome: outcome}
	clk := clock.NewFake(time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	avail := &fakeAvailability{}

	svc := NewService(repo, provider, notifier, avail, clk, "https://courtly.test/payments/return")

	return &paymentFixture{
		svc:      svc,
		repo:     repo,
		provider: provider,
		clock:    clk,
		notifier: notifier,
		avail:    avail,
		ownerID:  uuid.New(),
		courtID:  uuid.New(),
	}
}

// seedCart plants an open cart with one live hold.
func (fx *paymentFixture) seedCart(t *testing.T) *carts.Cart {
	t.Helper()
	cart := &carts.Cart{ID: uuid.New(), OwnerID: fx.ownerID, OwnerEmail: "owner@example.com"}
	fx.repo.carts[cart.ID] = cart
	hold := &carts.Hold{
		ID:        uuid.New(),
		CartID:    cart.ID,
		CourtID:   fx.courtID,
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
		Price:     decimal.RequireFromString("12000"),
		ExpiresAt: fx.clock.Now().Add(5 * time.Minute),
	}
	fx.repo.holds[hold.ID] = hold
	return cart
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeAuthorized)
	cart := &carts.Cart{ID: uuid.New(), OwnerID: fx.ownerID}
	fx.repo.carts[cart.ID] = cart

	_, err := fx.svc.InitiateCheckout(context.Background(), fx.ownerID)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for empty cart, got %v", err)
	}
}

func TestCheckoutExpiredHoldAbortsCart(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeAuthorized)
	cart := fx.seedCart(t)

	fx.clock.Advance(6 * time.Minute)

	_, err := fx.svc.InitiateCheckout(context.Background(), fx.ownerID)
	var ee *errs.ExpiredError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExpiredError, got %v", err)
	}
	if _, ok := fx.repo.carts[cart.ID]; ok {
		t.Error("expired cart should be torn down")
	}
	if fx.avail.invalidated == 0 {
		t.Error("availability should be invalidated when holds are released")
	}
}

func TestApprovedPaymentPromotesHolds(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeAuthorized)
	cart := fx.seedCart(t)

	checkout, err := fx.svc.InitiateCheckout(context.Background(), fx.ownerID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}
	if !checkout.Amount.Equal(decimal.RequireFromString("12000")) {
		t.Errorf("amount = %s, want 12000", checkout.Amount)
	}

	result, err := fx.svc.ConfirmPayment(context.Background(), checkout.Token)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	if result.Status != ResultApproved {
		t.Fatalf("status = %s, want approved", result.Status)
	}
	if len(result.Bookings) != 1 {
		t.Fatalf("bookings = %d, want 1", len(result.Bookings))
	}
	if result.Bookings[0].Status != bookings.StatusConfirmed {
		t.Errorf("promoted booking status = %s, want CONFIRMED", result.Bookings[0].Status)
	}
	if !fx.repo.carts[cart.ID].Paid {
		t.Error("cart should be marked paid")
	}
	if len(fx.repo.holds) != 0 {
		t.Errorf("holds should be deleted after promotion, %d remain", len(fx.repo.holds))
	}
	if fx.notifier.confirmed != 1 {
		t.Errorf("confirmation notifications = %d, want 1", fx.notifier.confirmed)
	}
}

func TestDuplicateConfirmationIsIdempotent(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeAuthorized)
	fx.seedCart(t)

	checkout, err := fx.svc.InitiateCheckout(context.Background(), fx.ownerID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}
	if _, err := fx.svc.ConfirmPayment(context.Background(), checkout.Token); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	again, err := fx.svc.ConfirmPayment(context.Background(), checkout.Token)
	if err != nil {
		t.Fatalf("second confirm should succeed, got %v", err)
	}
	if again.Status != ResultAlreadyProcessed {
		t.Errorf("status = %s, want already_processed", again.Status)
	}
	if fx.provider.commits != 1 {
		t.Errorf("gateway commits = %d, want 1 (no duplicate commit)", fx.provider.commits)
	}
	if fx.notifier.confirmed != 1 {
		t.Errorf("confirmation notifications = %d, want 1", fx.notifier.confirmed)
	}
}

func TestDeclinedPaymentReleasesSlots(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeDeclined)
	cart := fx.seedCart(t)

	checkout, err := fx.svc.InitiateCheckout(context.Background(), fx.ownerID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}

	result, err := fx.svc.ConfirmPayment(context.Background(), checkout.Token)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	if result.Status != ResultDeclined {
		t.Fatalf("status = %s, want declined", result.Status)
	}
	if _, ok := fx.repo.carts[cart.ID]; ok {
		t.Error("declined cart should be torn down")
	}
	if len(fx.repo.holds) != 0 {
		t.Errorf("declined holds should be deleted, %d remain", len(fx.repo.holds))
	}
	if fx.avail.invalidated == 0 {
		t.Error("availability should be invalidated so the slot reappears")
	}
	if fx.notifier.confirmed != 0 {
		t.Error("declined payment must not send a confirmation")
	}
}

func TestGatewayFailureReleasesCart(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeAuthorized)
	cart := fx.seedCart(t)

	checkout, err := fx.svc.InitiateCheckout(context.Background(), fx.ownerID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}

	fx.provider.commitErr = errs.Provider(errors.New("connection refused"), "payment gateway unreachable")

	_, err = fx.svc.ConfirmPayment(context.Background(), checkout.Token)
	var pe *errs.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if _, ok := fx.repo.carts[cart.ID]; ok {
		t.Error("cart should be torn down after a gateway failure mid-confirm")
	}
	if len(fx.repo.holds) != 0 {
		t.Errorf("holds should be released after a gateway failure, %d remain", len(fx.repo.holds))
	}
	if fx.avail.invalidated == 0 {
		t.Error("availability should be invalidated so the slot reappears")
	}
}

func TestCommitRaceWithReaperExpiresCart(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeAuthorized)
	fx.seedCart(t)

	checkout, err := fx.svc.InitiateCheckout(context.Background(), fx.ownerID)
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}

	// The holds lapse between checkout and the gateway callback.
	fx.clock.Advance(6 * time.Minute)

	_, err = fx.svc.ConfirmPayment(context.Background(), checkout.Token)
	var ee *errs.ExpiredError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExpiredError when holds lapse mid-payment, got %v", err)
	}
	if len(fx.repo.bookings) != 0 {
		t.Error("no bookings may be promoted from lapsed holds")
	}
}

func TestUnknownTokenRejected(t *testing.T) {
	fx := newPaymentFixture(t, OutcomeAuthorized)

	_, err := fx.svc.ConfirmPayment(context.Background(), "no-such-token")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for unknown token, got %v", err)
	}
}
