package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"FitPulse/model"

	"github.com/go-sql-driver/mysql"
)

const userColumns = "id, email, name, password_hash, age, height, weight, country, dob, gender, bmi, diet, calories, mealplan, created_at, updated_at"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user *model.User) (int64, error)
	GetUserByID(id int64) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	UpdateProfile(user *model.User) error
}

// mysqlUserRepository implements UserRepository for MySQL.
type mysqlUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new mysqlUserRepository.
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

// CreateUser adds a new user to the database.
// Returns ErrDuplicateEmail when the email is already taken.
func (r *mysqlUserRepository) CreateUser(user *model.User) (int64, error) {
	query := "INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?)"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare create user statement: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(user.Email, user.Name, user.PasswordHash)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("failed to execute create user statement: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a user by their ID.
func (r *mysqlUserRepository) GetUserByID(id int64) (*model.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	row := r.db.QueryRow(query, id)
	user := &model.User{}
	err := scanUser(row, user)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for ID %d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *mysqlUserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	row := r.db.QueryRow(query, email)
	user := &model.User{}
	err := scanUser(row, user)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to scan user row for email %s: %w", email, err)
	}
	return user, nil
}

// UpdateProfile writes the full set of mutable profile columns for the user's
// email. The caller is responsible for merging request fields into the stored
// values first; this mirrors the single-UPDATE write path of the profile form.
func (r *mysqlUserRepository) UpdateProfile(user *model.User) error {
	query := `UPDATE users SET name = ?, age = ?, height = ?, weight = ?, country = ?,
		dob = ?, gender = ?, bmi = ?, diet = ?, calories = ?, mealplan = ?, updated_at = NOW()
		WHERE email = ?`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare update profile statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.Name, user.Age, user.Height, user.Weight, user.Country,
		user.DOB, user.Gender, user.BMI, user.Diet, user.Calories, user.MealPlan, user.Email)
	if err != nil {
		return fmt.Errorf("failed to execute update profile statement: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row, user *model.User) error {
	return row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.Age, &user.Height, &user.Weight, &user.Country, &user.DOB,
		&user.Gender, &user.BMI, &user.Diet, &user.Calories, &user.MealPlan,
		&user.CreatedAt, &user.UpdatedAt)
}
