package user

import (
	"beertrack/domain"
	"beertrack/entities"
	"beertrack/internal/utils/metrics"
	"beertrack/pkg/jwt"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) error
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, sessionID string) error
		// Authenticate resolves a session id to its user. Expired sessions are
		// deleted before ErrTokenExpired is returned.
		Authenticate(ctx context.Context, sessionID string) (*entities.User, error)
		SweepExpiredSessions(ctx context.Context) (int64, error)
		SessionTTL() time.Duration
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		sessionTTL     time.Duration
		now            func() time.Time
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, sessionTTL time.Duration) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		sessionTTL:     sessionTTL,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword never fails loudly: a malformed hash is a mismatch.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *userService) SessionTTL() time.Duration { return s.sessionTTL }

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		return domain.ErrInvalidUserData
	}
	if len(req.Password) > domain.MaxPasswordBytes {
		return domain.ErrInvalidUserData
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}
	if !CheckPassword(req.Password, user.PasswordHash) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return domain.LoginResponse{}, fmt.Errorf("generate session token: %w", err)
	}

	now := s.now()
	session := &entities.Session{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.userRepository.CreateSession(ctx, session); err != nil {
		return domain.LoginResponse{}, err
	}

	signed, err := s.jwtService.GenerateSessionToken(token)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token:     signed,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *userService) Logout(ctx context.Context, sessionID string) error {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil
		}
		return err
	}
	return s.userRepository.DeleteSession(ctx, session.Token)
}

func (s *userService) Authenticate(ctx context.Context, sessionID string) (*entities.User, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserMissing
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.userRepository.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.SessionsPurged.Add(float64(n))
		log.Infof("purged %d expired sessions", n)
	}
	return n, nil
}

// loadSession returns the live session for id. An expired row is deleted
// before the error is returned so it can never be trusted.
func (s *userService) loadSession(ctx context.Context, sessionID string) (*entities.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrTokenNotFound
	}

	session, err := s.userRepository.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}

	if session.Expired(s.now()) {
		if err := s.userRepository.DeleteSession(ctx, session.Token); err != nil {
			return nil, err
		}
		metrics.SessionsPurged.Inc()
		return nil, domain.ErrTokenExpired
	}
	return session, nil
}
