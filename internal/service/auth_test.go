package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
)

type fakeAuthRepo struct {
	usersByEmail map[string]domain.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{usersByEmail: map[string]domain.User{}}
}

func (f *fakeAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.usersByEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = uuid.New()
	f.usersByEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestSignup_HashesPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	user, err := svc.Signup(context.Background(), domain.User{
		Email:    "hans@example.com",
		Password: "oktoberfest1",
		Name:     "Hans",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)

	stored := repo.usersByEmail["hans@example.com"]
	assert.NotEqual(t, "oktoberfest1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("oktoberfest1")))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "hans@example.com", Password: "oktoberfest1"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "hans@example.com", Password: "different2pw"})
	require.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{Email: "hans@example.com", Password: "oktoberfest1"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "correct credentials", email: "hans@example.com", password: "oktoberfest1"},
		{name: "wrong password", email: "hans@example.com", password: "wrongpass99", wantErr: ErrWrongPassword},
		{name: "unknown email", email: "greta@example.com", password: "oktoberfest1", wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
		})
	}
}
