package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"beertrack/domain"
	"beertrack/entities"
	"beertrack/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users    map[uint]*entities.User
	sessions map[string]*entities.Session
	nextID   uint

	createErr error
	deleted   []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[uint]*entities.User{},
		sessions: map[string]*entities.Session{},
	}
}

func (f *fakeUserRepo) RegisterUser(_ context.Context, u *entities.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	u.JoinedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint) (*entities.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []uint) ([]*entities.User, error) {
	var out []*entities.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CreateSession(_ context.Context, s *entities.Session) error {
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeUserRepo) GetSession(_ context.Context, token string) (*entities.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) DeleteSession(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	delete(f.sessions, token)
	return nil
}

func (f *fakeUserRepo) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for token, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, token)
			n++
		}
	}
	return n, nil
}

func newTestService(repo *fakeUserRepo) (*userService, jwt.JWTService) {
	jwtService := jwt.NewJWTService("test-secret")
	svc := NewUserService(repo, jwtService, 7*24*time.Hour).(*userService)
	return svc, jwtService
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	require.NoError(t, svc.Register(ctx, domain.RegisterRequest{Username: "  alice ", Password: "pw"}))
	u, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.True(t, CheckPassword("pw", u.PasswordHash))

	err = svc.Register(ctx, domain.RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = svc.Register(ctx, domain.RegisterRequest{Username: "   ", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	err = svc.Register(ctx, domain.RegisterRequest{Username: "bob", Password: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestRegister_DuplicateKeyIsConflict(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = gorm.ErrDuplicatedKey
	svc, _ := newTestService(repo)

	err := svc.Register(context.Background(), domain.RegisterRequest{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, jwtService := newTestService(repo)
	require.NoError(t, svc.Register(ctx, domain.RegisterRequest{Username: "alice", Password: "pw"}))

	res, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), res.ExpiresAt, time.Minute)

	sid, err := jwtService.GetSessionIDByToken(res.Token)
	require.NoError(t, err)
	assert.Len(t, sid, 64)

	u, err := svc.Authenticate(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	require.NoError(t, svc.Register(ctx, domain.RegisterRequest{Username: "alice", Password: "pw"}))

	_, err := svc.Login(ctx, domain.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Login(ctx, domain.LoginRequest{Username: "nobody", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("pw", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("pw", ""))
}

func TestAuthenticate_ExpiredSessionIsPurged(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	require.NoError(t, svc.Register(ctx, domain.RegisterRequest{Username: "alice", Password: "pw"}))

	repo.sessions["old"] = &entities.Session{
		Token:     "old",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	_, err := svc.Authenticate(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, []string{"old"}, repo.deleted)
	assert.NotContains(t, repo.sessions, "old")

	_, err = svc.Authenticate(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestAuthenticate_UnknownAndMissingUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	repo.sessions["orphan"] = &entities.Session{Token: "orphan", UserID: 42, ExpiresAt: time.Now().Add(time.Hour)}
	_, err = svc.Authenticate(ctx, "orphan")
	assert.ErrorIs(t, err, domain.ErrUserMissing)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	repo.sessions["live"] = &entities.Session{Token: "live", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, svc.Logout(ctx, "live"))
	assert.NotContains(t, repo.sessions, "live")

	// Unknown sessions still log out cleanly.
	require.NoError(t, svc.Logout(ctx, "live"))
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestSweepExpiredSessions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)
	repo.sessions["a"] = &entities.Session{Token: "a", ExpiresAt: time.Now().Add(-time.Hour)}
	repo.sessions["b"] = &entities.Session{Token: "b", ExpiresAt: time.Now().Add(time.Hour)}

	n, err := svc.SweepExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, repo.sessions, "b")
}

func TestAuthenticate_RepositoryError(t *testing.T) {
	svc, _ := newTestService(newFakeUserRepo())
	svc.userRepository = &erroringRepo{fakeUserRepo: newFakeUserRepo()}

	_, err := svc.Authenticate(context.Background(), "x")
	assert.EqualError(t, err, "db down")
	assert.False(t, errors.Is(err, domain.ErrUnauthenticated))
}

type erroringRepo struct {
	*fakeUserRepo
}

func (e *erroringRepo) GetSession(context.Context, string) (*entities.Session, error) {
	return nil, errors.New("db down")
}

func TestRegister_PasswordByteLimit(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc, _ := newTestService(repo)

	// 72 runes but 144 bytes.
	err := svc.Register(ctx, domain.RegisterRequest{Username: "alice", Password: strings.Repeat("é", 72)})
	assert.ErrorIs(t, err, domain.ErrInvalidUserData)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Empty(t, repo.users)

	require.NoError(t, svc.Register(ctx, domain.RegisterRequest{Username: "alice", Password: strings.Repeat("é", 36)}))
}
