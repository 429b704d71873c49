package models

import "github.com/google/uuid"

// StationType represents the kind of work a station performs.
type StationType string

const (
	StationPrep    StationType = "prep"
	StationCooking StationType = "cooking"
	StationPlating StationType = "plating"
)

// EquipmentStatus represents the status of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentIdle   EquipmentStatus = "idle"
	EquipmentBusy   EquipmentStatus = "busy"
	EquipmentBroken EquipmentStatus = "broken"
)

// Equipment is a kitchen station. Reliability wears down with use; at 0 the
// station breaks and blocks all further starts until repaired. Capacity
// bounds concurrent processes and matters for cooking equipment only.
type Equipment struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        StationType     `json:"type"`
	Status      EquipmentStatus `json:"status"`
	Capacity    int             `json:"capacity"`
	Reliability float64         `json:"reliability"`
	InUse       int             `json:"inUse"`
}

// EquipmentOption overrides a default field on new Equipment.
type EquipmentOption func(*Equipment)

func WithEquipmentID(id string) EquipmentOption {
	return func(e *Equipment) { e.ID = id }
}

func WithEquipmentName(name string) EquipmentOption {
	return func(e *Equipment) { e.Name = name }
}

func OfStationType(t StationType) EquipmentOption {
	return func(e *Equipment) { e.Type = t }
}

func WithCapacity(n int) EquipmentOption {
	return func(e *Equipment) { e.Capacity = n }
}

func WithReliability(r float64) EquipmentOption {
	return func(e *Equipment) { e.Reliability = r }
}

// NewEquipment creates an idle station at full reliability.
func NewEquipment(opts ...EquipmentOption) *Equipment {
	e := &Equipment{
		ID:          uuid.NewString(),
		Name:        "station",
		Type:        StationCooking,
		Status:      EquipmentIdle,
		Capacity:    1,
		Reliability: 1.0,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Available reports whether the station can accept one more process.
func (e *Equipment) Available() bool {
	if e.Status == EquipmentBroken {
		return false
	}
	return e.InUse < e.Capacity
}

// Wear applies one use worth of reliability loss. Returns true when the
// station breaks as a result.
func (e *Equipment) Wear(amount float64) bool {
	e.Reliability -= amount
	if e.Reliability <= 0 {
		e.Reliability = 0
		e.Status = EquipmentBroken
		return true
	}
	return false
}
