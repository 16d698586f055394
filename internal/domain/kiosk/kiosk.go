package kiosk

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyCode        = errors.New("kiosk code cannot be empty")
	ErrEmptyLocation    = errors.New("kiosk location cannot be empty")
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrInvalidCapacity  = errors.New("fill level cannot exceed maximum capacity")
	ErrInvalidHours     = errors.New("operating hours must be in HH:MM format")
)

var hoursPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Situation describes how full a kiosk bin currently is
type Situation string

const (
	SituationAvailable   Situation = "AVAILABLE"
	SituationFull        Situation = "FULL"
	SituationMaintenance Situation = "MAINTENANCE"
)

// OperationalStatus describes whether a kiosk is in service
type OperationalStatus string

const (
	StatusActive      OperationalStatus = "ACTIVE"
	StatusInactive    OperationalStatus = "INACTIVE"
	StatusMaintenance OperationalStatus = "MAINTENANCE"
)

// Kiosk represents one physical collection point. Version supports
// optimistic locking on fill-level updates from the event processor.
type Kiosk struct {
	ID          uuid.UUID         `json:"id"`
	Code        string            `json:"code"`
	Location    string            `json:"location"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Description string            `json:"description,omitempty"`
	Situation   Situation         `json:"situation"`
	Status      OperationalStatus `json:"status"`
	FillCurrent int               `json:"fill_current"`
	FillMax     int               `json:"fill_max"`
	OpenTime    string            `json:"open_time"`
	CloseTime   string            `json:"close_time"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NormalizeCode canonicalizes a kiosk code. Codes are stored uppercased;
// event lookups by code rely on every write path applying this.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewKiosk creates a kiosk with defaults matching a freshly deployed unit
func NewKiosk(code, location string, latitude, longitude float64) (*Kiosk, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}
	if strings.TrimSpace(location) == "" {
		return nil, ErrEmptyLocation
	}
	if latitude < -90 || latitude > 90 {
		return nil, ErrInvalidLatitude
	}
	if longitude < -180 || longitude > 180 {
		return nil, ErrInvalidLongitude
	}

	now := time.Now()
	return &Kiosk{
		ID:          uuid.New(),
		Code:        NormalizeCode(code),
		Location:    location,
		Latitude:    latitude,
		Longitude:   longitude,
		Situation:   SituationAvailable,
		Status:      StatusActive,
		FillCurrent: 0,
		FillMax:     100,
		OpenTime:    "06:00",
		CloseTime:   "22:00",
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Validate checks the mutable fields before an update is persisted
func (k *Kiosk) Validate() error {
	if strings.TrimSpace(k.Code) == "" {
		return ErrEmptyCode
	}
	if strings.TrimSpace(k.Location) == "" {
		return ErrEmptyLocation
	}
	if k.Latitude < -90 || k.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if k.Longitude < -180 || k.Longitude > 180 {
		return ErrInvalidLongitude
	}
	if k.FillCurrent > k.FillMax || k.FillCurrent < 0 || k.FillMax < 1 {
		return ErrInvalidCapacity
	}
	if !hoursPattern.MatchString(k.OpenTime) || !hoursPattern.MatchString(k.CloseTime) {
		return ErrInvalidHours
	}
	return nil
}

// RecordDeposit bumps the fill level by one item and flips the situation to
// FULL when capacity is reached
func (k *Kiosk) RecordDeposit() {
	if k.FillCurrent < k.FillMax {
		k.FillCurrent++
	}
	if k.FillCurrent >= k.FillMax {
		k.Situation = SituationFull
	}
	k.UpdatedAt = time.Now()
	k.Version++
}

// FillPercentage reports how full the kiosk bin is, rounded down
func (k *Kiosk) FillPercentage() int {
	if k.FillMax <= 0 {
		return 0
	}
	return k.FillCurrent * 100 / k.FillMax
}
