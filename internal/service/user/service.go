package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/cistech/hrms-backend-go/internal/domain/quota"
	"github.com/cistech/hrms-backend-go/internal/domain/request"
	"github.com/cistech/hrms-backend-go/internal/domain/user"
	"github.com/cistech/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// Service owns the identity store: credentials, the org hierarchy and
// the HR admin user surface.
type Service struct {
	tx       database.TxManager
	users    user.Repository
	quotas   quota.Repository
	requests request.Repository
}

func NewService(tx database.TxManager, userRepository user.Repository, quotaRepository quota.Repository, requestRepository request.Repository) *Service {
	return &Service{
		tx:       tx,
		users:    userRepository,
		quotas:   quotaRepository,
		requests: requestRepository,
	}
}

// Authenticate verifies email and password, returning the user on success.
func (s *Service) Authenticate(ctx context.Context, req user.LoginRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, user.ErrInvalidCredentials
		}
		return user.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return user.User{}, user.ErrInvalidCredentials
	}

	return u, nil
}

// Create registers a new user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         user.Role(req.Role),
		ManagerID:    req.ManagerID,
		Division:     req.Division,
		PasswordHash: string(hash),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// Update applies a partial user update, hashing a new password when one
// is provided.
func (s *Service) Update(ctx context.Context, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		req.PasswordHash = &hashStr
	}

	if err := s.users.Update(ctx, req); err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailExists
		}
		return err
	}

	return nil
}

// Delete removes a user. Deletion is refused while the user still owns
// requests or quota rows; the guards and the delete run in one
// transaction so a request submitted in between cannot slip past them.
// Dangling manager and decider references are nulled by the repository
// before the row goes.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ownsRequests, err := s.requests.ExistsByOwner(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check owned requests: %w", err)
		}
		if ownsRequests {
			return user.ErrUserOwnsRequests
		}

		ownsQuotas, err := s.quotas.ExistsByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check owned quotas: %w", err)
		}
		if ownsQuotas {
			return user.ErrUserOwnsQuotas
		}

		return s.users.Delete(ctx, id)
	})
}

// Get returns a single user by id.
func (s *Service) Get(ctx context.Context, id string) (user.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users with their manager names joined.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

// ListManagers returns all users holding the MANAGER role.
func (s *Service) ListManagers(ctx context.Context) ([]user.User, error) {
	return s.users.ListManagers(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
