package subject

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*Subject, error)
	FindByUsername(ctx context.Context, username string) (*Subject, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Subject, error) {
	var s Subject
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Subject, error) {
	var s Subject
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
