package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the status of an ephemeral station task.
type TaskStatus string

const (
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// PreparationTask is one ingredient being prepped on a prep station.
type PreparationTask struct {
	ID           string     `json:"id"`
	StationID    string     `json:"stationId"`
	IngredientID string     `json:"ingredientId"`
	Action       StepAction `json:"action"`
	StartTime    time.Time  `json:"startTime"`
	Duration     float64    `json:"duration"`
	Progress     float64    `json:"progress"`
	Status       TaskStatus `json:"status"`
}

// CookingProcess is one recipe step of an order cooking on a station.
// Progress runs 0-100; values past 100 signal overcook risk.
type CookingProcess struct {
	ID          string     `json:"id"`
	StationID   string     `json:"stationId"`
	OrderID     string     `json:"orderId"`
	StepIndex   int        `json:"stepIndex"`
	StartTime   time.Time  `json:"startTime"`
	OptimalTime float64    `json:"optimalTime"`
	Progress    float64    `json:"progress"`
	Status      TaskStatus `json:"status"`
	Quality     float64    `json:"quality"`
	Overcooked  bool       `json:"overcooked"`
	RiskWarned  bool       `json:"riskWarned"`
}

// PlatingTask is one order being assembled on the plating pool.
type PlatingTask struct {
	ID        string     `json:"id"`
	StationID string     `json:"stationId"`
	OrderID   string     `json:"orderId"`
	StartTime time.Time  `json:"startTime"`
	Items     []string   `json:"items"`
	Garnishes []string   `json:"garnishes"`
	Status    TaskStatus `json:"status"`
	Quality   float64    `json:"quality"`
}

// Kitchen owns the stations and the in-flight task records for the three
// process pools. Tasks are keyed by generated id and archived on completion.
type Kitchen struct {
	Stations      []*Equipment               `json:"stations"`
	PrepTasks     map[string]*PreparationTask `json:"prepTasks"`
	CookProcesses map[string]*CookingProcess  `json:"cookProcesses"`
	PlatingTasks  map[string]*PlatingTask     `json:"platingTasks"`
}

// NewKitchen creates a kitchen over the given stations.
func NewKitchen(stations []*Equipment) *Kitchen {
	return &Kitchen{
		Stations:      stations,
		PrepTasks:     make(map[string]*PreparationTask),
		CookProcesses: make(map[string]*CookingProcess),
		PlatingTasks:  make(map[string]*PlatingTask),
	}
}

// Clone copies the station roster into a fresh kitchen with no in-flight
// tasks.
func (k *Kitchen) Clone() *Kitchen {
	stations := make([]*Equipment, len(k.Stations))
	for i, s := range k.Stations {
		copied := *s
		stations[i] = &copied
	}
	return NewKitchen(stations)
}

// FindAvailableStation returns the first station of the given type that can
// accept another process, or nil.
func (k *Kitchen) FindAvailableStation(t StationType) *Equipment {
	for _, s := range k.Stations {
		if s.Type == t && s.Available() {
			return s
		}
	}
	return nil
}

// Station returns the station with the given id, or nil.
func (k *Kitchen) Station(id string) *Equipment {
	for _, s := range k.Stations {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// RepairEquipment restores a broken station to service. Nothing in the tick
// loop or the action catalog calls this yet; it is the hook an external
// repair mechanic would use.
func (k *Kitchen) RepairEquipment(id string, reliability float64) bool {
	s := k.Station(id)
	if s == nil {
		return false
	}
	s.Reliability = reliability
	if s.Status == EquipmentBroken {
		s.Status = EquipmentIdle
	}
	return true
}

// NewTaskID generates an id for an ephemeral task record.
func NewTaskID() string {
	return uuid.NewString()
}
