package dayops

import (
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
)

// DayStatus represents the lifecycle status of a business day
type DayStatus string

const (
	DayStatusOpen   DayStatus = "OPEN"
	DayStatusClosed DayStatus = "CLOSED"
	DayStatusLocked DayStatus = "LOCKED"
)

// IsValid checks if the status is a valid DayStatus
func (s DayStatus) IsValid() bool {
	switch s {
	case DayStatusOpen, DayStatusClosed, DayStatusLocked:
		return true
	}
	return false
}

// String returns the string representation of DayStatus
func (s DayStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle is strictly OPEN -> CLOSED -> LOCKED, never backward.
func (s DayStatus) CanTransitionTo(target DayStatus) bool {
	switch s {
	case DayStatusOpen:
		return target == DayStatusClosed
	case DayStatusClosed:
		return target == DayStatusLocked
	case DayStatusLocked:
		return false // Terminal state
	}
	return false
}

// BusinessDay represents one operational calendar day.
// At most one day may be OPEN system-wide at any time.
type BusinessDay struct {
	shared.BaseEntity
	BusinessDate time.Time `gorm:"type:date;not null;uniqueIndex"`
	Status       DayStatus `gorm:"type:varchar(16);not null;index"`
	ClosedAt     *time.Time
	LockedAt     *time.Time
}

// TableName returns the table name for GORM
func (BusinessDay) TableName() string {
	return "day_status"
}

// NewBusinessDay opens a new business day for the given date
func NewBusinessDay(businessDate time.Time) (*BusinessDay, error) {
	if businessDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Business date cannot be empty")
	}

	return &BusinessDay{
		BaseEntity:   shared.NewBaseEntity(),
		BusinessDate: truncateToDate(businessDate),
		Status:       DayStatusOpen,
	}, nil
}

// IsOpen reports whether the day is currently OPEN
func (d *BusinessDay) IsOpen() bool {
	return d.Status == DayStatusOpen
}

// Close transitions the day from OPEN to CLOSED
func (d *BusinessDay) Close() error {
	if !d.Status.CanTransitionTo(DayStatusClosed) {
		return shared.NewDomainError("INVALID_DAY_STATE", "Only an OPEN day can be closed")
	}

	now := time.Now()
	d.Status = DayStatusClosed
	d.ClosedAt = &now
	d.UpdatedAt = now

	return nil
}

// Lock transitions the day from CLOSED to LOCKED. Locking is terminal.
func (d *BusinessDay) Lock() error {
	if !d.Status.CanTransitionTo(DayStatusLocked) {
		return shared.NewDomainError("INVALID_DAY_STATE", "Only a CLOSED day can be locked")
	}

	now := time.Now()
	d.Status = DayStatusLocked
	d.LockedAt = &now
	d.UpdatedAt = now

	return nil
}

// truncateToDate drops the time-of-day component
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
