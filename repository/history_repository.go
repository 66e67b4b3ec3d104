package repository

import (
	"fmt"

	"FitPulse/model"

	"gorm.io/gorm"
)

// HistoryRepository defines the interface for post history records.
// Entries are append-only: there is deliberately no update or delete.
type HistoryRepository interface {
	Create(entry *model.History) error
	ListByEmail(email string) ([]model.History, error)
}

// gormHistoryRepository implements HistoryRepository with GORM.
type gormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new gormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) HistoryRepository {
	return &gormHistoryRepository{db: db}
}

// Create persists a new history entry.
func (r *gormHistoryRepository) Create(entry *model.History) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}
	return nil
}

// ListByEmail returns every entry ever created for the email, in insertion order.
func (r *gormHistoryRepository) ListByEmail(email string) ([]model.History, error) {
	var entries []model.History
	if err := r.db.Where("email = ?", email).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list history for %s: %w", email, err)
	}
	return entries, nil
}
