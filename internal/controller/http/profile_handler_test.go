package http

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/usecase"
	"blogicum/pkg/paginator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func profileRouter(t *testing.T, user *entity.User, profiles *MockProfileUseCase, auth *MockAuthUseCase) http.Handler {
	handler := NewProfileHandler(profiles, auth, SessionCookies{TTL: time.Hour}, testLogger())
	router := setupTestRouter(t, user)
	router.GET("/profile/:username/", handler.Profile)
	router.GET("/profile/:username/edit/", handler.EditProfile)
	router.POST("/profile/:username/edit/", handler.EditProfile)
	router.GET("/profile/:username/password/", handler.ChangePassword)
	router.POST("/profile/:username/password/", handler.ChangePassword)
	router.GET("/profile/:username/password/done/", handler.PasswordChangeDone)
	return router
}

func TestProfile(t *testing.T) {
	profiles := new(MockProfileUseCase)
	hidden := samplePost()
	hidden.IsPublished = false
	profiles.On("GetProfile", "author", "", author).Return(&usecase.Profile{
		User:    author,
		Posts:   []*entity.Post{hidden},
		Page:    paginator.New(1, 10, ""),
		IsOwner: true,
	}, nil)

	w := get(profileRouter(t, author, profiles, nil), "/profile/author/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Страница пользователя author")
	assert.Contains(t, body, "Снято с публикации")
	assert.Contains(t, body, "/profile/author/edit/")
}

func TestProfile_UnknownUser(t *testing.T) {
	profiles := new(MockProfileUseCase)
	profiles.On("GetProfile", "ghost", "", (*entity.User)(nil)).Return(nil, entity.ErrNotFound)

	w := get(profileRouter(t, nil, profiles, nil), "/profile/ghost/")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditProfile_OtherUserRedirects(t *testing.T) {
	profiles := new(MockProfileUseCase)
	profiles.On("GetEditableProfile", "author", visitor).Return(nil, usecase.ErrNotOwner)

	w := get(profileRouter(t, visitor, profiles, nil), "/profile/author/edit/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/", w.Header().Get("Location"))
}

func TestEditProfile_RenameRedirectsToNewURL(t *testing.T) {
	profiles := new(MockProfileUseCase)
	profiles.On("GetEditableProfile", "author", author).Return(author, nil)
	profiles.On("UpdateProfile", "author", author, usecase.ProfileInput{Username: "writer", FirstName: "Ann", LastName: "Lee"}).
		Return(&entity.User{ID: 1, Username: "writer"}, nil)

	w := postForm(profileRouter(t, author, profiles, nil), "/profile/author/edit/", url.Values{
		"username": {"writer"}, "first_name": {"Ann"}, "last_name": {"Lee"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/writer/", w.Header().Get("Location"))
}

func TestEditProfile_UsernameTaken(t *testing.T) {
	profiles := new(MockProfileUseCase)
	profiles.On("GetEditableProfile", "author", author).Return(author, nil)
	profiles.On("UpdateProfile", "author", author, mock.Anything).
		Return(nil, &usecase.ValidationError{Field: "username", Err: usecase.ErrUsernameTaken})

	w := postForm(profileRouter(t, author, profiles, nil), "/profile/author/edit/", url.Values{"username": {"visitor"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Пользователь с таким именем уже существует.")
}

func TestChangePassword_ReissuesSession(t *testing.T) {
	profiles := new(MockProfileUseCase)
	auth := new(MockAuthUseCase)
	updated := &entity.User{ID: 1, Username: "author", Password: "new-hash"}
	profiles.On("GetEditableProfile", "author", author).Return(author, nil)
	profiles.On("ChangePassword", "author", author, usecase.PasswordChangeInput{
		OldPassword: "old", NewPassword1: "n3w-secret", NewPassword2: "n3w-secret",
	}).Return(updated, nil)
	auth.On("IssueSession", updated).Return("fresh-token", nil)

	w := postForm(profileRouter(t, author, profiles, auth), "/profile/author/password/", url.Values{
		"old_password": {"old"}, "new_password1": {"n3w-secret"}, "new_password2": {"n3w-secret"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/password/done/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookieName+"=fresh-token")
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	profiles := new(MockProfileUseCase)
	auth := new(MockAuthUseCase)
	profiles.On("GetEditableProfile", "author", author).Return(author, nil)
	profiles.On("ChangePassword", "author", author, mock.Anything).
		Return(nil, &usecase.ValidationError{Field: "old_password", Err: usecase.ErrWrongPassword})

	w := postForm(profileRouter(t, author, profiles, auth), "/profile/author/password/", url.Values{
		"old_password": {"bad"}, "new_password1": {"n3w-secret"}, "new_password2": {"n3w-secret"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ваш старый пароль введен неправильно.")
	auth.AssertNotCalled(t, "IssueSession", mock.Anything)
}

func TestPasswordChangeDone(t *testing.T) {
	profiles := new(MockProfileUseCase)
	profiles.On("GetEditableProfile", "author", author).Return(author, nil)

	w := get(profileRouter(t, author, profiles, nil), "/profile/author/password/done/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Пароль изменён")
}

func TestPasswordChangeDone_OtherUserRedirected(t *testing.T) {
	profiles := new(MockProfileUseCase)
	profiles.On("GetEditableProfile", "author", visitor).Return(nil, usecase.ErrNotOwner)

	w := get(profileRouter(t, visitor, profiles, nil), "/profile/author/password/done/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/", w.Header().Get("Location"))
}
