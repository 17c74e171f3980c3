package carts

import "time"

// AddHoldRequest places a hold on one slot and drops it into the cart
type AddHoldRequest struct {
	CourtID   string    `json:"court_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}
