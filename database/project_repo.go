package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns projects with their client, newest first, narrowed by filter
func (r *ProjectRepo) FindAll(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	projects := []*models.Project{}
	query := r.db.WithContext(ctx).Preload("Client").Order("created_at DESC")
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", models.NormalizeObjectID(filter.ClientID))
	}
	err := query.Find(&projects).Error
	return projects, err
}

// FindByID returns a project with its client, or nil when no project has that id
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return nil, nil
	}
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Client").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// Update writes every column of an existing project. The loaded client is
// never written back.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Delete removes a project by id and reports whether a row was deleted
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return false, nil
	}
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
