package usecase

import (
	"fmt"
	"strings"

	"blogicum/internal/authz"
	"blogicum/internal/entity"
	"blogicum/internal/repo/persistent"
	"blogicum/pkg/logger"
	"blogicum/pkg/paginator"
)

type Profile struct {
	User    *entity.User
	Posts   []*entity.Post
	Page    paginator.Page
	IsOwner bool
}

type ProfileInput struct {
	Username  string
	FirstName string
	LastName  string
}

type PasswordChangeInput struct {
	OldPassword  string
	NewPassword1 string
	NewPassword2 string
}

type ProfileUseCase interface {
	GetProfile(username, page string, viewer *entity.User) (*Profile, error)
	GetEditableProfile(username string, viewer *entity.User) (*entity.User, error)
	UpdateProfile(username string, viewer *entity.User, input ProfileInput) (*entity.User, error)
	ChangePassword(username string, viewer *entity.User, input PasswordChangeInput) (*entity.User, error)
}

type profileUseCase struct {
	userRepo persistent.UserRepository
	postRepo persistent.PostRepository
	pageSize int
	logger   *logger.Logger
}

func NewProfileUseCase(userRepo persistent.UserRepository, postRepo persistent.PostRepository, pageSize int, logger *logger.Logger) ProfileUseCase {
	return &profileUseCase{
		userRepo: userRepo,
		postRepo: postRepo,
		pageSize: pageSize,
		logger:   logger,
	}
}

// GetProfile lists every post of the user, published or not.
func (uc *profileUseCase) GetProfile(username, raw string, viewer *entity.User) (*Profile, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	total, err := uc.postRepo.CountByAuthor(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	page := paginator.New(total, uc.pageSize, raw)
	posts, err := uc.postRepo.ListByAuthor(user.ID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &Profile{
		User:    user,
		Posts:   posts,
		Page:    page,
		IsOwner: authz.IsOwner(viewer, user),
	}, nil
}

// GetEditableProfile resolves username and requires it to be the viewer.
func (uc *profileUseCase) GetEditableProfile(username string, viewer *entity.User) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(viewer, user) {
		return nil, ErrNotOwner
	}
	return user, nil
}

func (uc *profileUseCase) UpdateProfile(username string, viewer *entity.User, input ProfileInput) (*entity.User, error) {
	user, err := uc.GetEditableProfile(username, viewer)
	if err != nil {
		return nil, err
	}

	newUsername := strings.TrimSpace(input.Username)
	if err := validateUsername(newUsername); err != nil {
		return nil, fieldError("username", err)
	}
	if newUsername != user.Username {
		taken, err := uc.userRepo.UsernameTaken(newUsername, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, fieldError("username", ErrUsernameTaken)
		}
	}

	user.Username = newUsername
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)

	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ChangePassword returns the updated user so the caller can issue a fresh session.
func (uc *profileUseCase) ChangePassword(username string, viewer *entity.User, input PasswordChangeInput) (*entity.User, error) {
	user, err := uc.GetEditableProfile(username, viewer)
	if err != nil {
		return nil, err
	}

	if !checkPassword(user.Password, input.OldPassword) {
		return nil, fieldError("old_password", ErrWrongPassword)
	}
	if input.NewPassword1 != input.NewPassword2 {
		return nil, fieldError("new_password2", ErrPasswordMismatch)
	}
	if err := validatePassword(input.NewPassword1, user.Username); err != nil {
		return nil, fieldError("new_password2", err)
	}

	hashed, err := hashPassword(input.NewPassword1)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	uc.logger.Info("Password changed: user=%s", user.Username)
	return user, nil
}
