package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/repo/cache"
	"blogicum/internal/repo/persistent"
	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
)

// MailPublisher hands mail tasks to the mail worker. *queue.Client implements it.
type MailPublisher interface {
	PublishMailTask(task queue.MailTask) error
}

type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

type AuthUseCase interface {
	Register(input RegisterInput) (*entity.User, error)
	Login(username, password string) (*entity.User, error)
	IssueSession(user *entity.User) (string, error)
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	sessions   cache.SessionStore
	jwtService *jwt.Service
	mail       MailPublisher
	mailFrom   string
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	sessions cache.SessionStore,
	jwtService *jwt.Service,
	mail MailPublisher,
	mailFrom string,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtService: jwtService,
		mail:       mail,
		mailFrom:   mailFrom,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(input RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	if err := validateUsername(username); err != nil {
		return nil, fieldError("username", err)
	}

	taken, err := uc.userRepo.UsernameTaken(username, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, fieldError("username", ErrUsernameTaken)
	}

	if input.Password1 != input.Password2 {
		return nil, fieldError("password2", ErrPasswordMismatch)
	}
	if err := validatePassword(input.Password1, username); err != nil {
		return nil, fieldError("password2", err)
	}

	hashed, err := hashPassword(input.Password1)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username: username,
		Email:    strings.TrimSpace(input.Email),
		Password: hashed,
		IsActive: true,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Info("User registered: id=%d, username=%s", user.ID, user.Username)

	if uc.mail != nil && user.Email != "" {
		go uc.sendWelcome(user)
	}

	return user, nil
}

func (uc *authUseCase) sendWelcome(user *entity.User) {
	task := queue.MailTask{
		Subject: "Welcome to Blogicum",
		Body:    fmt.Sprintf("Hello, %s! Your account is ready.", user.Username),
		From:    uc.mailFrom,
		To:      []string{user.Email},
	}
	if err := uc.mail.PublishMailTask(task); err != nil {
		uc.logger.Error("Failed to publish welcome mail for user=%s: %v", user.Username, err)
	}
}

func (uc *authUseCase) Login(username, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !checkPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return user, nil
}

func (uc *authUseCase) IssueSession(user *entity.User) (string, error) {
	return uc.jwtService.GenerateToken(user.ID, sessionHash(user))
}

func (uc *authUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if uc.sessions != nil {
		revoked, err := uc.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			uc.logger.Warn("Failed to check session revocation: %v", err)
		} else if revoked {
			return nil, ErrInvalidSession
		}
	}

	user, err := uc.userRepo.GetByID(claims.UserID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive || claims.SessionHash != sessionHash(user) {
		return nil, ErrInvalidSession
	}
	return user, nil
}

// Logout revokes the token until it would have expired on its own.
func (uc *authUseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	if uc.sessions == nil || claims.ExpiresAt == nil {
		return nil
	}
	return uc.sessions.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

func (uc *authUseCase) SessionTTL() time.Duration {
	return uc.jwtService.TTL()
}
