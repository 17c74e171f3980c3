package bookings

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

// fakeRepo keeps bookings in memory and mimics the transactional conflict
// check with a linear scan.
type fakeRepo struct {
	bookings map[uuid.UUID]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeRepo) CreateWithConflictCheck(ctx context.Context, booking *Booking, now time.Time) error {
	for _, b := range f.bookings {
		if b.CourtID != booking.CourtID || !b.IsActive() {
			continue
		}
		if availability.Overlaps(booking.StartTime, booking.EndTime, b.StartTime, b.EndTime) {
			return errs.Conflict("the requested time overlaps an existing booking")
		}
	}
	booking.ID = uuid.New()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	b, ok := f.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) MarkNoShows(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.Status == StatusPending && b.StartTime.Before(before) {
			b.Status = StatusNoShow
			count++
		}
	}
	return count, nil
}

// fakeCourtService serves a single court with its venue window.
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

type recordingNotifier struct {
	confirmed []uuid.UUID
	cancelled []uuid.UUID
}

func (n *recordingNotifier) BookingConfirmed(ctx context.Context, b *Booking) error {
	n.confirmed = append(n.confirmed, b.ID)
	return nil
}
func (n *recordingNotifier) BookingCancelled(ctx context.Context, b *Booking) error {
	n.cancelled = append(n.cancelled, b.ID)
	return nil
}

type fixture struct {
	svc      Service
	repo     *fakeRepo
	clock    *clock.Fake
	notifier *recordingNotifier
	avail    *fakeAvailability
	court    *courts.Court
	ownerID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	court := &courts.Court{
		ID:          uuid.New(),
		VenueID:     uuid.New(),
		Name:        "Cancha 1",
		Sport:       courts.SportFootball,
		HourlyRate:  decimal.RequireFromString("12000"),
		SlotMinutes: 60,
		Active:      true,
	}
	court.Venue.ID = court.VenueID
	court.Venue.Name = "Club Central"
	court.Venue.OpenTime = "08:00"
	court.Venue.CloseTime = "23:00"
	court.Venue.Active = true

	repo := newFakeRepo()
	clk := clock.NewFake(time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	avail := &fakeAvailability{}

	svc := NewService(repo, &fakeCourtService{court: court}, avail, notifier, clk, 2*time.Hour)

	return &fixture{
		svc:      svc,
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		avail:    avail,
		court:    court,
		ownerID:  uuid.New(),
	}
}

func (fx *fixture) createAt(t *testing.T, hour int) *BookingResponse {
	t.Helper()
	booking, err := fx.svc.CreateBooking(context.Background(), fx.ownerID, "owner@example.com", CreateBookingRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, hour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, hour+1, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	return booking
}

func TestCreateBookingSnapshotsPrice(t *testing.T) {
	fx := newFixture(t)

	booking := fx.createAt(t, 10)

	want := decimal.RequireFromString("12000")
	if !booking.Price.Equal(want) {
		t.Errorf("price = %s, want %s", booking.Price, want)
	}
	if booking.Status != StatusPending {
		t.Errorf("status = %s, want PENDING", booking.Status)
	}
	if fx.avail.invalidated != 1 {
		t.Errorf("availability cache invalidations = %d, want 1", fx.avail.invalidated)
	}
}

func TestCreateBookingRejectsPastStart(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateBooking(context.Background(), fx.ownerID, "owner@example.com", CreateBookingRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC),
	})

	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for past start, got %v", err)
	}
}

func TestCreateBookingRejectsOutsideWindow(t *testing.T) {
	fx := newFixture(t)

	// 22:00-24:00 runs past the 23:00 close.
	_, err := fx.svc.CreateBooking(context.Background(), fx.ownerID, "owner@example.com", CreateBookingRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 22, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})

	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for out-of-window interval, got %v", err)
	}
}

func TestCreateBookingRejectsInvertedInterval(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateBooking(context.Background(), fx.ownerID, "owner@example.com", CreateBookingRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
	})

	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for inverted interval, got %v", err)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	fx := newFixture(t)
	fx.createAt(t, 10)

	_, err := fx.svc.CreateBooking(context.Background(), uuid.New(), "other@example.com", CreateBookingRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 11, 30, 0, 0, time.UTC),
	})

	var ce *errs.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for overlapping interval, got %v", err)
	}
}

func TestCreateBookingBackToBackAllowed(t *testing.T) {
	fx := newFixture(t)
	fx.createAt(t, 10)

	// 11:00 starts exactly where 10:00-11:00 ends.
	if _, err := fx.svc.CreateBooking(context.Background(), uuid.New(), "other@example.com", CreateBookingRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("back-to-back booking should succeed, got %v", err)
	}
}

func TestConfirmBookingIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 10)

	first, err := fx.svc.ConfirmBooking(context.Background(), booking.ID, fx.ownerID)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if first.Status != StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", first.Status)
	}

	second, err := fx.svc.ConfirmBooking(context.Background(), booking.ID, fx.ownerID)
	if err != nil {
		t.Fatalf("second confirm should succeed, got %v", err)
	}
	if second.Status != StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", second.Status)
	}
	if len(fx.notifier.confirmed) != 1 {
		t.Errorf("confirmation notifications = %d, want 1 (no duplicate on idempotent confirm)", len(fx.notifier.confirmed))
	}
}

func TestConfirmAfterStartFails(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 10)

	fx.clock.Set(time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC))
	_, err := fx.svc.ConfirmBooking(context.Background(), booking.ID, fx.ownerID)
	var se *errs.StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError confirming at start time, got %v", err)
	}
	if len(fx.notifier.confirmed) != 0 {
		t.Errorf("confirmation notifications = %d, want 0", len(fx.notifier.confirmed))
	}
}

func TestCancelAfterStartFails(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 10)

	fx.clock.Set(time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC))
	_, err := fx.svc.CancelBooking(context.Background(), booking.ID, fx.ownerID)
	var se *errs.StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError cancelling a started booking, got %v", err)
	}
}

func TestConfirmCancelledBookingFails(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 12)

	if _, err := fx.svc.CancelBooking(context.Background(), booking.ID, fx.ownerID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := fx.svc.ConfirmBooking(context.Background(), booking.ID, fx.ownerID)
	var se *errs.StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError confirming a cancelled booking, got %v", err)
	}
}

func TestCancelBookingWindow(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 12)

	// 121 minutes before start: allowed.
	fx.clock.Set(time.Date(2026, 9, 14, 9, 59, 0, 0, time.UTC))
	cancelled, err := fx.svc.CancelBooking(context.Background(), booking.ID, fx.ownerID)
	if err != nil {
		t.Fatalf("cancel 121 minutes ahead should succeed, got %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}

	// 119 minutes before start: inside the window, rejected.
	late := fx.createAt(t, 13)
	fx.clock.Set(time.Date(2026, 9, 14, 11, 1, 0, 0, time.UTC))
	_, err = fx.svc.CancelBooking(context.Background(), late.ID, fx.ownerID)
	var se *errs.StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError cancelling 119 minutes ahead, got %v", err)
	}
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 12)

	if _, err := fx.svc.CancelBooking(context.Background(), booking.ID, fx.ownerID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	again, err := fx.svc.CancelBooking(context.Background(), booking.ID, fx.ownerID)
	if err != nil {
		t.Fatalf("second cancel should succeed, got %v", err)
	}
	if again.Status != StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", again.Status)
	}
	if len(fx.notifier.cancelled) != 1 {
		t.Errorf("cancellation notifications = %d, want 1", len(fx.notifier.cancelled))
	}
}

func TestCancelledSlotFreesInterval(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 12)

	if _, err := fx.svc.CancelBooking(context.Background(), booking.ID, fx.ownerID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The same interval can be booked again.
	if _, err := fx.svc.CreateBooking(context.Background(), uuid.New(), "other@example.com", CreateBookingRequest{
		CourtID:   fx.court.ID.String(),
		StartTime: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("rebooking a cancelled interval should succeed, got %v", err)
	}
}

func TestBookingHiddenFromOtherOwners(t *testing.T) {
	fx := newFixture(t)
	booking := fx.createAt(t, 10)

	_, err := fx.svc.GetBooking(context.Background(), booking.ID, uuid.New())
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for foreign booking, got %v", err)
	}
}

func TestMarkNoShows(t *testing.T) {
	fx := newFixture(t)
	pending := fx.createAt(t, 10)
	confirmed := fx.createAt(t, 12)
	if _, err := fx.svc.ConfirmBooking(context.Background(), confirmed.ID, fx.ownerID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	fx.clock.Set(time.Date(2026, 9, 14, 14, 0, 0, 0, time.UTC))
	count, err := fx.svc.MarkNoShows(context.Background())
	if err != nil {
		t.Fatalf("MarkNoShows: %v", err)
	}
	if count != 1 {
		t.Fatalf("no-show count = %d, want 1", count)
	}

	reloaded, err := fx.repo.GetByID(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != StatusNoShow {
		t.Errorf("status = %s, want NO_SHOW", reloaded.Status)
	}
}
