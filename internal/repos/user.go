package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/models"
)

// UserRepo reads user records for authentication. User management itself
// happens outside this application.
type UserRepo interface {
	// GetByCredentials matches username and password exactly (case
	// sensitive, plaintext — inherited from the legacy schema). Returns
	// nil when no user matches.
	GetByCredentials(ctx context.Context, username, password string) (*models.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where(`"User" = ? AND "Pass" = ?`, username, password).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}
