package carts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"courtly/internal/availability"
	"courtly/internal/courts"
	"courtly/internal/shared/clock"
	"courtly/internal/shared/errs"
)

type fakeCartRepo struct {
	carts map[uuid.UUID]*Cart
	holds map[uuid.UUID]*Hold
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: make(map[uuid.UUID]*Cart),
		holds: make(map[uuid.UUID]*Hold),
	}
}

func (f *fakeCartRepo) GetOrCreateOpenCart(ctx context.Context, ownerID uuid.UUID, ownerEmail string) (*Cart, error) {
	for _, c := range f.carts {
		if c.OwnerID == ownerID && !c.Paid {
			copied := *c
			return &copied, nil
		}
	}
	cart := &Cart{ID: uuid.New(), OwnerID: ownerID, OwnerEmail: ownerEmail}
	f.carts[cart.ID] = cart
	copied := *cart
	return &copied, nil
}

func (f *fakeCartRepo) GetOpenCartWithHolds(ctx context.Context, ownerID uuid.UUID) (*Cart, error) {
	for _, c := range f.carts {
		if c.OwnerID == ownerID && !c.Paid {
			copied := *c
			copied.Holds = nil
			for _, h := range f.holds {
				if h.CartID == c.ID {
					copied.Holds = append(copied.Holds, *h)
				}
			}
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartRepo) AddHoldWithConflictCheck(ctx context.Context, hold *Hold, now time.Time) error {
	for _, h := range f.holds {
		if h.CourtID != hold.CourtID || !h.Active(now) {
			continue
		}
		if availability.Overlaps(hold.StartTime, hold.EndTime, h.StartTime, h.EndTime) {
			return errs.Conflict("the requested time is held by another cart")
		}
	}
	hold.ID = uuid.New()
	f.holds[hold.ID] = hold
	return nil
}

func (f *fakeCartRepo) RemoveHold(ctx context.Context, holdID, ownerID uuid.UUID) (*Hold, error) {
	h, ok := f.holds[holdID]
	if !ok {
		return nil, errs.NotFound("hold %s not found", holdID)
	}
	cart, ok := f.carts[h.CartID]
	if !ok || cart.OwnerID != ownerID || cart.Paid {
		return nil, errs.NotFound("hold %s not found", holdID)
	}
	delete(f.holds, holdID)
	copied := *h
	return &copied, nil
}

func (f *fakeCartRepo) DeleteHolds(ctx context.Context, holdIDs []uuid.UUID) error {
	for _, id := range holdIDs {
		delete(f.holds, id)
	}
	return nil
}

func (f *fakeCartRepo) ReapExpiredHolds(ctx context.Context, now time.Time) (int64, []uuid.UUID, error) {
	var count int64
	courtSet := make(map[uuid.UUID]bool)
	for id, h := range f.holds {
		if h.Expired(now) {
			courtSet[h.CourtID] = true
			delete(f.holds, id)
			count++
		}
	}
	var courtIDs []uuid.UUID
	for id := range courtSet {
		courtIDs = append(courtIDs, id)
	}
	return count, courtIDs, nil
}

type fakeCourtService struct {
	court *courts.Court
}

func (f *fakeCourtService) GetCourtWithVenue(ctx context.Context, id uuid.UUID) (*courts.Court, error) {
	if f.court == nil || f.court.ID != id {
		return nil, errs.NotFound("court %s not found", id)
	}
	return f.court, nil
}

func (f *fakeCourtService) CreateCourt(ctx context.Context, venueID uuid.UUID, req courts.CreateCourtRequest) (*courts.CourtResponse, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeCourtService) GetCourt(ctx context.Context, id uuid.UUID) (*courts.CourtResponse, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeCourtService) ListCourts(ctx context.Context, venueID uuid.UUID, onlyActive bool) ([]courts.CourtResponse, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeCourtService) UpdateCourt(ctx context.Context, id uuid.UUID, req courts.UpdateCourtRequest) (*courts.CourtResponse, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeCourtService) DeleteCourt(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
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

type cartFixture struct {
	svc     Service
	repo    *fakeCartRepo
	clock   *clock.Fake
	avail   *fakeAvailability
	court   *courts.Court
	ownerID uuid.UUID
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	court := &courts.Court{
		ID:          uuid.New(),
		VenueID:     uuid.New(),
		Name:        "Cancha 2",
		Sport:       courts.SportPadel,
		HourlyRate:  decimal.RequireFromString("18000"),
		SlotMinutes: 60,
		Active:      true,
	}
	court.Venue.ID = court.VenueID
	court.Venue.OpenTime = "08:00"
	court.Venue.CloseTime = "23:00"
	court.Venue.Active = true

	repo := newFakeCartRepo()
	clk := clock.NewFake(time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC))
	avail := &fakeAvailability{}

	svc := NewService(repo, &fakeCourtService{court: court}, avail, clk, 5*time.Minute)

	return &cartFixture{
		svc:     svc,
		repo:    repo,
		clock:   clk,
		avail:   avail,
		court:   court,
		ownerID: uuid.New(),
	}
}

func (fx *cartFixture) holdAt(t *testing.T, hour int) *CartResponse {
	t.Helper()
	cart, err := fx.svc.AddHold(context.Background(), fx.ownerID, "owner@example.com", AddHoldRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, hour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, hour+1, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("AddHold: %v", err)
	}
	return cart
}

func TestAddHoldSetsExpiryFromCreation(t *testing.T) {
	fx := newCartFixture(t)

	cart := fx.holdAt(t, 10)

	if len(cart.Holds) != 1 {
		t.Fatalf("holds = %d, want 1", len(cart.Holds))
	}
	wantExpiry := time.Date(2026, 9, 14, 9, 5, 0, 0, time.UTC)
	if !cart.Holds[0].ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expires_at = %v, want %v", cart.Holds[0].ExpiresAt, wantExpiry)
	}
	wantPrice := decimal.RequireFromString("18000")
	if !cart.Holds[0].Price.Equal(wantPrice) {
		t.Errorf("price = %s, want %s", cart.Holds[0].Price, wantPrice)
	}
}

func TestAddHoldConflictsWithActiveHold(t *testing.T) {
	fx := newCartFixture(t)
	fx.holdAt(t, 10)

	_, err := fx.svc.AddHold(context.Background(), uuid.New(), "other@example.com", AddHoldRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	})

	var ce *errs.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for a slot held by another cart, got %v", err)
	}
}

func TestViewCartDropsExpiredHolds(t *testing.T) {
	fx := newCartFixture(t)
	fx.holdAt(t, 10)

	// Just past the 5-minute expiry.
	fx.clock.Advance(5*time.Minute + time.Second)

	cart, err := fx.svc.ViewCart(context.Background(), fx.ownerID, "owner@example.com")
	if err != nil {
		t.Fatalf("ViewCart: %v", err)
	}
	if len(cart.Holds) != 0 {
		t.Fatalf("holds = %d, want 0 after expiry", len(cart.Holds))
	}
	if len(fx.repo.holds) != 0 {
		t.Errorf("expired hold should be deleted, %d remain", len(fx.repo.holds))
	}
}

func TestHoldStillActiveAtExactExpiry(t *testing.T) {
	fx := newCartFixture(t)
	fx.holdAt(t, 10)

	// Exactly at the expiry instant the hold has not lapsed yet.
	fx.clock.Advance(5 * time.Minute)

	cart, err := fx.svc.ViewCart(context.Background(), fx.ownerID, "owner@example.com")
	if err != nil {
		t.Fatalf("ViewCart: %v", err)
	}
	if len(cart.Holds) != 1 {
		t.Fatalf("holds = %d, want 1 at the exact expiry instant", len(cart.Holds))
	}
}

func TestReapedSlotCanBeHeldAgain(t *testing.T) {
	fx := newCartFixture(t)
	fx.holdAt(t, 10)

	fx.clock.Advance(6 * time.Minute)

	reaped, err := fx.svc.ReapExpired(context.Background())
	if err != nil {
		t.Fatalf("ReapExpired: %v", err)
	}
	if reaped != 1 {
		t.Fatalf("reaped = %d, want 1", reaped)
	}

	// Another user can now hold the freed slot.
	if _, err := fx.svc.AddHold(context.Background(), uuid.New(), "other@example.com", AddHoldRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("holding a reaped slot should succeed, got %v", err)
	}
}

func TestExpiredHoldNoLongerBlocksEvenBeforeReap(t *testing.T) {
	fx := newCartFixture(t)
	fx.holdAt(t, 10)

	// The row still exists but its expiry has passed.
	fx.clock.Advance(6 * time.Minute)

	if _, err := fx.svc.AddHold(context.Background(), uuid.New(), "other@example.com", AddHoldRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("an expired hold must not block the slot, got %v", err)
	}
}

func TestRemoveHoldScopedToOwner(t *testing.T) {
	fx := newCartFixture(t)
	cart := fx.holdAt(t, 10)

	_, err := fx.svc.RemoveHold(context.Background(), uuid.New(), cart.Holds[0].ID)
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError removing a foreign hold, got %v", err)
	}

	if _, err := fx.svc.RemoveHold(context.Background(), fx.ownerID, cart.Holds[0].ID); err != nil {
		t.Fatalf("owner removal should succeed, got %v", err)
	}
}

func TestCartTotalSumsHoldPrices(t *testing.T) {
	fx := newCartFixture(t)
	fx.holdAt(t, 10)
	cart := fx.holdAt(t, 12)

	want := decimal.RequireFromString("36000")
	if !cart.Total.Equal(want) {
		t.Errorf("total = %s, want %s", cart.Total, want)
	}
}
