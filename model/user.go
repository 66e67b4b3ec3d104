package model

import (
	"database/sql"
	"time"
)

// User represents an account and its health profile.
// Optional columns use sql.Null types; handlers expose only the valid ones.
type User struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"` // Not exposed in API responses
	Age          sql.NullInt64   `json:"-"`
	Height       sql.NullFloat64 `json:"-"` // centimeters
	Weight       sql.NullFloat64 `json:"-"` // kilograms
	Country      sql.NullString  `json:"-"`
	DOB          sql.NullString  `json:"-"`
	Gender       sql.NullString  `json:"-"`
	BMI          sql.NullFloat64 `json:"-"` // computed once, then treated as a cached value
	Diet         sql.NullString  `json:"-"`
	Calories     sql.NullInt64   `json:"-"`
	MealPlan     sql.NullString  `json:"-"` // raw provider response, fetched once and never refreshed
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
