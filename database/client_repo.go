package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

type ClientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepo {
	return &ClientRepo{db}
}

// FindAll returns every client with its projects, newest first
func (r *ClientRepo) FindAll(ctx context.Context) ([]*models.Client, error) {
	clients := []*models.Client{}
	err := r.db.WithContext(ctx).
		Preload("Projects", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Order("created_at DESC").
		Find(&clients).Error
	return clients, err
}

// FindByID returns a client with its projects, or nil when no client has that id
func (r *ClientRepo) FindByID(ctx context.Context, id string) (*models.Client, error) {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return nil, nil
	}
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("Projects", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Add inserts a new client. The save hooks normalize and validate it first.
func (r *ClientRepo) Add(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error
}

// Update writes every column of an existing client
func (r *ClientRepo) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error
}

// Delete removes a client by id and reports whether a row was deleted.
// Projects referencing the client are left in place.
func (r *ClientRepo) Delete(ctx context.Context, id string) (bool, error) {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return false, nil
	}
	res := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
