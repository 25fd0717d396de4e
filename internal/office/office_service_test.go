package office

import (
	"context"
	"database/sql"
	"testing"

	officeerrors "go-presensi/internal/office/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, o *Office) error
	findByIDFn   func(ctx context.Context, id int64) (*Office, error)
	findAllFn    func(ctx context.Context) ([]Office, error)
	updateFn     func(ctx context.Context, o *Office) error
	softDeleteFn func(ctx context.Context, id int64) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, o *Office) error {
	return f.createFn(ctx, o)
}
func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*Office, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Office, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, o *Office) error {
	return f.updateFn(ctx, o)
}
func (f *fakeRepo) SoftDelete(ctx context.Context, id int64) error {
	return f.softDeleteFn(ctx, id)
}

func f64(v float64) *float64 { return &v }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Office
	repo := &fakeRepo{
		createFn: func(ctx context.Context, o *Office) error {
			o.ID = 1
			saved = *o
			return nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateRequest{
		Name:      "Kantor Pusat",
		Latitude:  f64(-6.2),
		Longitude: f64(106.8),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, StatusActive, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidCoordinates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, o *Office) error {
			t.Fatal("create should not be reached")
			return nil
		},
	}

	svc := NewService(db, repo)

	_, err := svc.Create(context.Background(), CreateRequest{
		Name:      "Kantor",
		Latitude:  f64(95),
		Longitude: f64(0),
	})
	assert.ErrorIs(t, err, officeerrors.ErrInvalidCoordinates)
}

func TestService_Create_NameTaken(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, o *Office) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_offices_name"}
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateRequest{
		Name:      "Kantor Pusat",
		Latitude:  f64(-6.2),
		Longitude: f64(106.8),
	})
	assert.ErrorIs(t, err, officeerrors.ErrOfficeNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_PartialFields(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	existing := Office{ID: 1, Name: "Kantor Pusat", Latitude: -6.2, Longitude: 106.8, Status: StatusActive}

	var updated Office
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Office, error) {
			cp := existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, o *Office) error {
			updated = *o
			return nil
		},
	}

	svc := NewService(db, repo)

	status := StatusInactive
	resp, err := svc.Update(context.Background(), 1, UpdateRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, resp.Status)
	// Field yang tidak dikirim tidak berubah.
	assert.Equal(t, "Kantor Pusat", updated.Name)
	assert.InDelta(t, -6.2, updated.Latitude, 1e-9)
}

func TestService_Update_RejectsBadCoordinates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Office, error) {
			return &Office{ID: 1, Latitude: -6.2, Longitude: 106.8}, nil
		},
		updateFn: func(ctx context.Context, o *Office) error {
			t.Fatal("update should not be reached")
			return nil
		},
	}

	svc := NewService(db, repo)

	_, err := svc.Update(context.Background(), 1, UpdateRequest{Longitude: f64(200)})
	assert.ErrorIs(t, err, officeerrors.ErrInvalidCoordinates)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*Office, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, officeerrors.ErrOfficeNotFound)
}

func TestService_Delete_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		softDeleteFn: func(ctx context.Context, id int64) error {
			return gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, officeerrors.ErrOfficeNotFound)
}
