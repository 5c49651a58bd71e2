package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/cistech/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, name, role, manager_id, division, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Email, u.Name, u.Role, u.ManagerID, u.Division, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, role, manager_id, division, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.ManagerID, &u.Division,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// GetByEmail implements user.Repository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, role, manager_id, division, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.ManagerID, &u.Division,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// List implements user.Repository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.name, u.role, u.manager_id, u.division, u.created_at, u.updated_at,
			   m.name AS manager_name
		FROM users u
		LEFT JOIN users m ON u.manager_id = m.id
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.Role, &u.ManagerID, &u.Division,
			&u.CreatedAt, &u.UpdatedAt, &u.ManagerName,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// ListManagers implements user.Repository.
func (r *userRepositoryImpl) ListManagers(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, name, role, manager_id, division, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, user.RoleManager)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	managers := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.Role, &u.ManagerID, &u.Division,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		managers = append(managers, u)
	}

	return managers, nil
}

// Update implements user.Repository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.ManagerID != nil {
		updates["manager_id"] = *req.ManagerID
	}
	if req.Division != nil {
		updates["division"] = *req.Division
	}
	if req.PasswordHash != nil {
		updates["password_hash"] = *req.PasswordHash
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for user update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE users SET " +
		strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, req.ID)

	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Delete implements user.Repository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Detach reports and decision audit references before the row goes.
	cleanups := []string{
		`UPDATE users SET manager_id = NULL WHERE manager_id = $1`,
		`UPDATE requests SET manager_by = NULL WHERE manager_by = $1`,
		`UPDATE requests SET hr_by = NULL WHERE hr_by = $1`,
	}
	for _, stmt := range cleanups {
		if _, err := q.Exec(ctx, stmt, id); err != nil {
			return err
		}
	}

	result, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// ManagerOf implements user.Repository.
func (r *userRepositoryImpl) ManagerOf(ctx context.Context, userID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.email, m.name, m.role, m.manager_id, m.division, m.created_at, m.updated_at
		FROM users u
		JOIN users m ON u.manager_id = m.id
		WHERE u.id = $1
	`

	var m user.User
	err := q.QueryRow(ctx, query, userID).Scan(
		&m.ID, &m.Email, &m.Name, &m.Role, &m.ManagerID, &m.Division,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrNoManagerAssigned
		}
		return user.User{}, err
	}

	return m, nil
}
