package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user, or nil when no user has that id
func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return nil, nil
	}
	return r.first(ctx, "id = ?", id)
}

// FindByEmail looks a user up by the normalized form of email
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update writes every column of an existing user
func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
