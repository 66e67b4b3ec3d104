package db

import (
	"database/sql"
	"fmt"
	"log"

	"FitPulse/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
func InitDB() error {
	if err := createUsersTable(); err != nil {
		return err
	}
	if err := createHistoryTable(); err != nil {
		return err
	}

	log.Println("Database initialization completed.")
	return nil
}

func createUsersTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(100) NOT NULL UNIQUE,
		name VARCHAR(255),
		password_hash VARCHAR(255) NOT NULL,
		age INT,
		height DOUBLE,
		weight DOUBLE,
		country VARCHAR(100),
		dob VARCHAR(12),
		gender VARCHAR(20),
		bmi DOUBLE,
		diet VARCHAR(100),
		calories INT,
		mealplan MEDIUMTEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);
	`
	_, err := DB.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	log.Println("Users table initialized successfully (or already exists).")
	return nil
}

func createHistoryTable() error {
	// The FK carries no ON DELETE action: history rows outlive post
	// lifecycle events and are never cascaded away.
	query := `
	CREATE TABLE IF NOT EXISTS history (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(100),
		post_id VARCHAR(64),
		title VARCHAR(50),
		content VARCHAR(300),
		status VARCHAR(10),
		event_name VARCHAR(20),
		CONSTRAINT fk_history_user FOREIGN KEY (email) REFERENCES users(email)
	);
	`
	_, err := DB.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}
	log.Println("History table initialized successfully (or already exists).")
	return nil
}
