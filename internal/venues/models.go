package venues

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Venue is a physical site with an operating window. Courts belong to a
// venue and are only bookable inside its window.
type Venue struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name    string    `gorm:"uniqueIndex;not null" json:"name"`
	Address string    `json:"address,omitempty"`
	Commune string    `json:"commune,omitempty"`
	Phone   string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email   string    `json:"email,omitempty"`
	MapsURL string    `json:"maps_url,omitempty"`

	// Operating window, same-day only, "HH:MM" wall-clock strings.
	OpenTime  string `gorm:"type:varchar(5);not null;default:'08:00'" json:"open_time"`
	CloseTime string `gorm:"type:varchar(5);not null;default:'23:00'" json:"close_time"`

	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Venue
func (Venue) TableName() string {
	return "venues"
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock value %q, want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in clock value %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in clock value %q", s)
	}
	return hour, minute, nil
}

// clockMinutes converts "HH:MM" to minutes since midnight. Invalid values
// are rejected at write time, so errors collapse to 0 here.
func clockMinutes(s string) int {
	h, m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return h*60 + m
}

// WindowFor anchors the operating window to a calendar date in loc.
func (v *Venue) WindowFor(date time.Time, loc *time.Location) (open, close time.Time) {
	oh, om, _ := ParseClock(v.OpenTime)
	ch, cm, _ := ParseClock(v.CloseTime)
	y, mo, d := date.In(loc).Date()
	open = time.Date(y, mo, d, oh, om, 0, 0, loc)
	close = time.Date(y, mo, d, ch, cm, 0, 0, loc)
	return open, close
}

// ContainsInterval reports whether [start,end) is a valid booking interval
// for this venue: both endpoints on the same calendar day and inside the
// operating window. The start must land strictly before closing, the end
// at or before closing, matching the half-open slot semantics.
func (v *Venue) ContainsInterval(start, end time.Time) bool {
	loc := start.Location()
	sy, sm, sd := start.Date()
	ey, em, ed := end.In(loc).Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}

	open := clockMinutes(v.OpenTime)
	close := clockMinutes(v.CloseTime)
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.In(loc).Hour()*60 + end.In(loc).Minute()

	return open <= startMin && startMin < close && open < endMin && endMin <= close
}
