package auth

import (
	"context"
	"testing"

	autherrors "go-presensi/internal/auth/errors"
	"go-presensi/internal/subject"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeSubjectRepo struct {
	byUsername map[string]*subject.Subject
	byID       map[int64]*subject.Subject
}

func (f *fakeSubjectRepo) FindByID(ctx context.Context, id int64) (*subject.Subject, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubjectRepo) FindByUsername(ctx context.Context, username string) (*subject.Subject, error) {
	if s, ok := f.byUsername[username]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func strptr(v string) *string { return &v }

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestService_Login_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := &fakeSubjectRepo{
		byUsername: map[string]*subject.Subject{
			"budi": {
				ID:       7,
				Username: "budi",
				Name:     strptr("Budi Santoso"),
				Password: hashed(t, "rahasia123"),
				Role:     subject.RoleUser,
				IsActive: true,
			},
		},
	}

	svc := NewService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "budi", Password: "rahasia123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(7), resp.Subject.ID)

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["subject_id"])
	assert.Equal(t, "budi", claims["username"])
	assert.Equal(t, subject.RoleUser, claims["role"])
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := &fakeSubjectRepo{
		byUsername: map[string]*subject.Subject{
			"budi": {ID: 7, Username: "budi", Password: hashed(t, "rahasia123"), IsActive: true},
		},
	}

	svc := NewService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "budi", Password: "salah"})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc := NewService(&fakeSubjectRepo{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_InactiveAccount(t *testing.T) {
	repo := &fakeSubjectRepo{
		byUsername: map[string]*subject.Subject{
			"budi": {ID: 7, Username: "budi", Password: hashed(t, "rahasia123"), IsActive: false},
		},
	}

	svc := NewService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "budi", Password: "rahasia123"})
	assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
}

func TestService_Me(t *testing.T) {
	repo := &fakeSubjectRepo{
		byID: map[int64]*subject.Subject{
			7: {ID: 7, Username: "budi", Name: strptr("Budi Santoso"), Role: subject.RoleUser},
		},
	}

	svc := NewService(repo)

	sum, err := svc.Me(context.Background(), 7)
	assert.NoError(t, err)
	if assert.NotNil(t, sum.Name) {
		assert.Equal(t, "Budi Santoso", *sum.Name)
	}

	_, err = svc.Me(context.Background(), 404)
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}
