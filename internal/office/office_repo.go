package office

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=office_repo.go -destination=mock/office_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *Office) error
	FindByID(ctx context.Context, id int64) (*Office, error)
	FindAll(ctx context.Context) ([]Office, error)
	Update(ctx context.Context, o *Office) error
	SoftDelete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return r
}

func (r *repository) Create(ctx context.Context, o *Office) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Office, error) {
	var o Office
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Office, error) {
	var offices []Office
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&offices).Error
	return offices, err
}

func (r *repository) Update(ctx context.Context, o *Office) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Office{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
