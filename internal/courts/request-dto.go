package courts

import "github.com/shopspring/decimal"

// CreateCourtRequest creates a court under a venue
type CreateCourtRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=120"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	Sport       string          `json:"sport" binding:"omitempty,oneof=FOOTBALL TENNIS PADEL MULTI OTHER"`
	SurfaceType string          `json:"surface_type" binding:"omitempty,max=40"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" binding:"required"`
	SlotMinutes int             `json:"slot_minutes" binding:"omitempty,min=15,max=240"`
}

// UpdateCourtRequest updates court fields, nil fields are left untouched
type UpdateCourtRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2,max=120"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Sport       *string          `json:"sport" binding:"omitempty,oneof=FOOTBALL TENNIS PADEL MULTI OTHER"`
	SurfaceType *string          `json:"surface_type" binding:"omitempty,max=40"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	SlotMinutes *int             `json:"slot_minutes" binding:"omitempty,min=15,max=240"`
	Active      *bool            `json:"active"`
}
