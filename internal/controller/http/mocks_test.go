package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/repo/persistent"
	"blogicum/internal/usecase"
	"blogicum/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPostUseCase struct {
	mock.Mock
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func (m *MockPostUseCase) Feed(page string) (*usecase.PostPage, error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostPage), args.Error(1)
}

func (m *MockPostUseCase) CategoryFeed(slug, page string) (*entity.Category, *usecase.PostPage, error) {
	args := m.Called(slug, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Category), args.Get(1).(*usecase.PostPage), args.Error(2)
}

func (m *MockPostUseCase) GetPost(postID uint, viewer *entity.User) (*entity.Post, []*entity.Comment, error) {
	args := m.Called(postID, viewer)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Post), args.Get(1).([]*entity.Comment), args.Error(2)
}

func (m *MockPostUseCase) GetOwnedPost(postID uint, user *entity.User) (*entity.Post, error) {
	args := m.Called(postID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) CreatePost(author *entity.User, input usecase.PostInput) (*entity.Post, error) {
	args := m.Called(author, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(postID uint, user *entity.User, input usecase.PostInput) (*entity.Post, error) {
	args := m.Called(postID, user, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(postID uint, user *entity.User) (*entity.Post, error) {
	args := m.Called(postID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) FormChoices() ([]*entity.Category, []*entity.Location, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*entity.Category), args.Get(1).([]*entity.Location), args.Error(2)
}

type MockCommentUseCase struct {
	mock.Mock
}

var _ usecase.CommentUseCase = (*MockCommentUseCase)(nil)

func (m *MockCommentUseCase) AddComment(postID uint, author *entity.User, text string) (*entity.Comment, error) {
	args := m.Called(postID, author, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) GetOwnedComment(postID, commentID uint, user *entity.User) (*entity.Comment, error) {
	args := m.Called(postID, commentID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(postID, commentID uint, user *entity.User, text string) (*entity.Comment, error) {
	args := m.Called(postID, commentID, user, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(postID, commentID uint, user *entity.User) error {
	args := m.Called(postID, commentID, user)
	return args.Error(0)
}

type MockProfileUseCase struct {
	mock.Mock
}

var _ usecase.ProfileUseCase = (*MockProfileUseCase)(nil)

func (m *MockProfileUseCase) GetProfile(username, page string, viewer *entity.User) (*usecase.Profile, error) {
	args := m.Called(username, page, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.Profile), args.Error(1)
}

func (m *MockProfileUseCase) GetEditableProfile(username string, viewer *entity.User) (*entity.User, error) {
	args := m.Called(username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockProfileUseCase) UpdateProfile(username string, viewer *entity.User, input usecase.ProfileInput) (*entity.User, error) {
	args := m.Called(username, viewer, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockProfileUseCase) ChangePassword(username string, viewer *entity.User, input usecase.PasswordChangeInput) (*entity.User, error) {
	args := m.Called(username, viewer, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func (m *MockAuthUseCase) Register(input usecase.RegisterInput) (*entity.User, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(username, password string) (*entity.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) IssueSession(user *entity.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthUseCase) SessionTTL() time.Duration {
	return time.Hour
}

type MockAdminUseCase struct {
	mock.Mock
}

var _ usecase.AdminUseCase = (*MockAdminUseCase)(nil)

func (m *MockAdminUseCase) ListCategories(filter persistent.CatalogFilter, page string) (*usecase.CategoryList, error) {
	args := m.Called(filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CategoryList), args.Error(1)
}

func (m *MockAdminUseCase) CreateCategory(input usecase.CategoryInput) (*entity.Category, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockAdminUseCase) SetCategoryPublished(id uint, published bool) (*entity.Category, error) {
	args := m.Called(id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockAdminUseCase) ListLocations(filter persistent.CatalogFilter, page string) (*usecase.LocationList, error) {
	args := m.Called(filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LocationList), args.Error(1)
}

func (m *MockAdminUseCase) CreateLocation(input usecase.LocationInput) (*entity.Location, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Location), args.Error(1)
}

func (m *MockAdminUseCase) SetLocationPublished(id uint, published bool) (*entity.Location, error) {
	args := m.Called(id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Location), args.Error(1)
}

func (m *MockAdminUseCase) ListPosts(filter persistent.PostFilter, page string) (*usecase.PostPage, error) {
	args := m.Called(filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostPage), args.Error(1)
}

func (m *MockAdminUseCase) SetPostPublished(id uint, published bool) (*entity.Post, error) {
	args := m.Called(id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func testLogger() *logger.Logger {
	return logger.NewWithWriters(io.Discard, io.Discard)
}

// setupTestRouter returns an engine with templates loaded and the given
// user (or nobody) logged in.
func setupTestRouter(t *testing.T, user *entity.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	router := gin.New()
	router.HTMLRender = renderer
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	})
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func postForm(router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func httptestPostWithCookie(router http.Handler, target, name, value string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, target, nil)
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	router.ServeHTTP(w, req)
	return w
}
