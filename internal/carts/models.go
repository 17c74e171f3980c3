package carts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courtly/internal/courts"
)

// Cart collects an owner's slot holds until checkout. Each owner has at
// most one open (unpaid) cart, enforced by a partial unique index. A paid
// cart is kept as the payment record after its holds are promoted.
type Cart struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	OwnerEmail string    `gorm:"not null" json:"owner_email"`

	Paid bool `gorm:"not null;default:false" json:"paid"`

	// Gateway reference, set once checkout starts.
	PaymentToken string `gorm:"index" json:"-"`

	Holds []Hold `gorm:"foreignKey:CartID" json:"holds,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Cart
func (Cart) TableName() string {
	return "carts"
}

// Total sums the snapshotted prices of all holds in the cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, h := range c.Holds {
		total = total.Add(h.Price)
	}
	return total
}

// Hold reserves [StartTime, EndTime) on a court while it sits in a cart.
// The expiry is fixed at creation and never extended; an unpaid hold past
// its expiry no longer blocks the slot even before the reaper deletes it.
type Hold struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CartID uuid.UUID `gorm:"type:uuid;not null;index" json:"cart_id"`
	Cart   *Cart     `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`

	CourtID uuid.UUID    `gorm:"type:uuid;not null;index" json:"court_id"`
	Court   courts.Court `gorm:"foreignKey:CourtID;constraint:OnDelete:RESTRICT" json:"-"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	// Price snapshot taken when the hold is created.
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	Paid      bool      `gorm:"not null;default:false" json:"paid"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Hold
func (Hold) TableName() string {
	return "holds"
}

// Expired reports whether the hold has lapsed. Paid holds never expire,
// they are waiting for promotion.
func (h *Hold) Expired(now time.Time) bool {
	return !h.Paid && now.After(h.ExpiresAt)
}

// Active reports whether the hold still blocks its interval.
func (h *Hold) Active(now time.Time) bool {
	return h.Paid || !now.After(h.ExpiresAt)
}
