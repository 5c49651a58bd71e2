package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed provisions the three default accounts and the employee's quota
// row for the current year. It is a no-op once any user exists.
func Seed(ctx context.Context, db *DB) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	var managerID string
	err = db.QueryRow(ctx, `
		INSERT INTO users (email, name, role, division, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "manager@example.com", "Manager One", "MANAGER", "Engineering", string(hash)).Scan(&managerID)
	if err != nil {
		return fmt.Errorf("failed to seed manager: %w", err)
	}

	var employeeID string
	err = db.QueryRow(ctx, `
		INSERT INTO users (email, name, role, manager_id, division, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, "employee@example.com", "Employee One", "EMPLOYEE", managerID, "Engineering", string(hash)).Scan(&employeeID)
	if err != nil {
		return fmt.Errorf("failed to seed employee: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (email, name, role, division, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`, "hr@example.com", "HR Admin", "HR_ADMIN", "Human Resources", string(hash))
	if err != nil {
		return fmt.Errorf("failed to seed HR admin: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO quotas (user_id, year, leave_total, leave_used, changeoff_earned, changeoff_used)
		VALUES ($1, $2, 12, 0, 0, 0)
		ON CONFLICT (user_id, year) DO NOTHING
	`, employeeID, time.Now().Year())
	if err != nil {
		return fmt.Errorf("failed to seed quota: %w", err)
	}

	slog.Info("seeded default accounts", "manager", "manager@example.com", "employee", "employee@example.com", "hr", "hr@example.com")
	return nil
}
