package database

import "context"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('EMPLOYEE','MANAGER','HR_ADMIN')),
		manager_id UUID REFERENCES users(id),
		division TEXT,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS quotas (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		year INT NOT NULL,
		leave_total INT NOT NULL DEFAULT 12,
		leave_used INT NOT NULL DEFAULT 0,
		changeoff_earned INT NOT NULL DEFAULT 0,
		changeoff_used INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, year)
	)`,
	`CREATE TABLE IF NOT EXISTS requests (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		type TEXT NOT NULL CHECK (type IN ('LEAVE','CHANGEOFF')),
		start_date DATE,
		end_date DATE,
		reason TEXT,
		days INT NOT NULL DEFAULT 0,
		departure_date DATE,
		return_date DATE,
		hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		location TEXT,
		pic TEXT,
		job_execution TEXT,
		attachment_path TEXT,
		activities JSONB,
		status TEXT NOT NULL CHECK (status IN ('PENDING_MANAGER','PENDING_HR','APPROVED','REJECTED')),
		manager_by UUID REFERENCES users(id),
		manager_at TIMESTAMPTZ,
		hr_by UUID REFERENCES users(id),
		hr_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_user ON requests(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status)`,
}

// Migrate applies the schema. Every statement is idempotent, so running
// it on each startup is safe.
func Migrate(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
