package usecase

import (
	"context"
	"io"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/repo/cache"
	"blogicum/internal/repo/persistent"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"

	"github.com/stretchr/testify/mock"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriters(io.Discard, io.Discard)
}

type MockPostRepository struct {
	mock.Mock
}

var _ persistent.PostRepository = (*MockPostRepository)(nil)

func (m *MockPostRepository) Create(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id uint) (*entity.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) ListVisible(now time.Time, categoryID *uint, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(now, categoryID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) CountVisible(now time.Time, categoryID *uint) (int64, error) {
	args := m.Called(now, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(authorID uint, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) CountByAuthor(authorID uint) (int64, error) {
	args := m.Called(authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Update(post *entity.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) List(filter persistent.PostFilter, limit, offset int) ([]*entity.Post, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) SetPublished(id uint, published bool) error {
	args := m.Called(id, published)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByPost(postID, commentID uint) (*entity.Comment, error) {
	args := m.Called(postID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(postID uint) ([]*entity.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

var _ persistent.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) Create(category *entity.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(id uint) (*entity.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetPublishedBySlug(slug string) (*entity.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListPublished() ([]*entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(filter persistent.CatalogFilter, limit, offset int) ([]*entity.Category, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) SetPublished(id uint, published bool) error {
	args := m.Called(id, published)
	return args.Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

var _ persistent.LocationRepository = (*MockLocationRepository)(nil)

func (m *MockLocationRepository) Create(location *entity.Location) error {
	args := m.Called(location)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(id uint) (*entity.Location, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Location), args.Error(1)
}

func (m *MockLocationRepository) ListPublished() ([]*entity.Location, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Location), args.Error(1)
}

func (m *MockLocationRepository) List(filter persistent.CatalogFilter, limit, offset int) ([]*entity.Location, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Location), args.Get(1).(int64), args.Error(2)
}

func (m *MockLocationRepository) SetPublished(id uint, published bool) error {
	args := m.Called(id, published)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UsernameTaken(username string, exceptID uint) (bool, error) {
	args := m.Called(username, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

var _ cache.SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

var _ ImageStore = (*MockImageStore)(nil)

func (m *MockImageStore) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type MockMailPublisher struct {
	mock.Mock
	sent chan queue.MailTask
}

var _ MailPublisher = (*MockMailPublisher)(nil)

func (m *MockMailPublisher) PublishMailTask(task queue.MailTask) error {
	args := m.Called(task)
	if m.sent != nil {
		m.sent <- task
	}
	return args.Error(0)
}
