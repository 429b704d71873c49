package database

import (
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ServedOrderRecord archives one settled order.
type ServedOrderRecord struct {
	gorm.Model
	OrderID      string
	CustomerID   string
	DishID       string
	QualityScore float64
	Tip          float64
	Total        float64
	ServedAt     time.Time
}

// SessionRecord archives one finished game session.
type SessionRecord struct {
	gorm.Model
	Reason          string
	Score           float64
	TimeElapsed     float64
	Difficulty      float64
	OrdersCompleted float64
	CustomersServed float64
	CustomersLost   float64
	EndedAt         time.Time
}

// Store wraps the archive database. The engine stays memory-authoritative;
// the store only records history.
type Store struct {
	db *gorm.DB
}

// Open initializes the sqlite archive and migrates the schema.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.AutoMigrate(&ServedOrderRecord{}, &SessionRecord{})
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordServedOrder archives a settled order.
func (s *Store) RecordServedOrder(rec ServedOrderRecord) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Create(&rec).Error
}

// RecordSession archives a finished session.
func (s *Store) RecordSession(rec SessionRecord) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Create(&rec).Error
}

// RecentSessions returns the latest finished sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var records []SessionRecord
	err := s.db.Order("ended_at desc").Limit(limit).Find(&records).Error
	return records, err
}

// OrdersForSessionWindow returns orders served between two times.
func (s *Store) OrdersForSessionWindow(from, to time.Time) ([]ServedOrderRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var records []ServedOrderRecord
	err := s.db.Where("served_at >= ? AND served_at <= ?", from, to).Find(&records).Error
	return records, err
}
