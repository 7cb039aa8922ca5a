package usecase

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"blogicum/internal/authz"
	"blogicum/internal/entity"
	"blogicum/internal/repo/persistent"
	"blogicum/pkg/logger"
	"blogicum/pkg/paginator"

	"github.com/google/uuid"
)

// ImageStore keeps uploaded post images. *s3.Client implements it.
type ImageStore interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	CategoryID  *uint
	LocationID  *uint
	Image       *multipart.FileHeader
	ClearImage  bool
}

type PostPage struct {
	Posts []*entity.Post
	Page  paginator.Page
}

type PostUseCase interface {
	Feed(page string) (*PostPage, error)
	CategoryFeed(slug, page string) (*entity.Category, *PostPage, error)
	GetPost(postID uint, viewer *entity.User) (*entity.Post, []*entity.Comment, error)
	GetOwnedPost(postID uint, user *entity.User) (*entity.Post, error)
	CreatePost(author *entity.User, input PostInput) (*entity.Post, error)
	UpdatePost(postID uint, user *entity.User, input PostInput) (*entity.Post, error)
	DeletePost(postID uint, user *entity.User) (*entity.Post, error)
	FormChoices() ([]*entity.Category, []*entity.Location, error)
}

type postUseCase struct {
	postRepo     persistent.PostRepository
	commentRepo  persistent.CommentRepository
	categoryRepo persistent.CategoryRepository
	locationRepo persistent.LocationRepository
	images       ImageStore
	pageSize     int
	logger       *logger.Logger
	now          func() time.Time
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	commentRepo persistent.CommentRepository,
	categoryRepo persistent.CategoryRepository,
	locationRepo persistent.LocationRepository,
	images ImageStore,
	pageSize int,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		images:       images,
		pageSize:     pageSize,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *postUseCase) Feed(page string) (*PostPage, error) {
	return uc.visiblePage(nil, page)
}

func (uc *postUseCase) CategoryFeed(slug, page string) (*entity.Category, *PostPage, error) {
	category, err := uc.categoryRepo.GetPublishedBySlug(slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := uc.visiblePage(&category.ID, page)
	if err != nil {
		return nil, nil, err
	}
	return category, posts, nil
}

func (uc *postUseCase) visiblePage(categoryID *uint, raw string) (*PostPage, error) {
	now := uc.now()

	total, err := uc.postRepo.CountVisible(now, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	page := paginator.New(total, uc.pageSize, raw)
	posts, err := uc.postRepo.ListVisible(now, categoryID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &PostPage{Posts: posts, Page: page}, nil
}

// GetPost hides posts that are not visible yet from everyone except their author.
func (uc *postUseCase) GetPost(postID uint, viewer *entity.User) (*entity.Post, []*entity.Comment, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, nil, err
	}

	if !authz.IsOwner(viewer, post) && !post.IsVisibleAt(uc.now()) {
		return nil, nil, entity.ErrNotFound
	}

	comments, err := uc.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}
	post.CommentCount = int64(len(comments))

	return post, comments, nil
}

func (uc *postUseCase) GetOwnedPost(postID uint, user *entity.User) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(user, post) {
		return nil, ErrNotOwner
	}
	return post, nil
}

func (uc *postUseCase) CreatePost(author *entity.User, input PostInput) (*entity.Post, error) {
	if err := uc.checkChoices(input); err != nil {
		return nil, err
	}

	post := &entity.Post{
		Title:       input.Title,
		Text:        input.Text,
		PubDate:     input.PubDate,
		IsPublished: input.IsPublished,
		AuthorID:    author.ID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}

	if input.Image != nil {
		if err := uc.storeImage(post, author, input.Image); err != nil {
			return nil, err
		}
	}

	if err := uc.postRepo.Create(post); err != nil {
		uc.removeImage(post.ImageKey)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	post.Author = author
	uc.logger.Info("Post created: id=%d, author=%s", post.ID, author.Username)
	return post, nil
}

func (uc *postUseCase) UpdatePost(postID uint, user *entity.User, input PostInput) (*entity.Post, error) {
	post, err := uc.GetOwnedPost(postID, user)
	if err != nil {
		return nil, err
	}
	if err := uc.checkChoices(input); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.IsPublished = input.IsPublished
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID

	oldKey := post.ImageKey
	switch {
	case input.Image != nil:
		if err := uc.storeImage(post, user, input.Image); err != nil {
			return nil, err
		}
	case input.ClearImage:
		post.Image = ""
		post.ImageKey = ""
	}

	if err := uc.postRepo.Update(post); err != nil {
		if post.ImageKey != oldKey {
			uc.removeImage(post.ImageKey)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if oldKey != "" && oldKey != post.ImageKey {
		uc.removeImage(oldKey)
	}
	return post, nil
}

func (uc *postUseCase) DeletePost(postID uint, user *entity.User) (*entity.Post, error) {
	post, err := uc.GetOwnedPost(postID, user)
	if err != nil {
		return nil, err
	}

	if err := uc.postRepo.Delete(post.ID); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	uc.removeImage(post.ImageKey)
	uc.logger.Info("Post deleted: id=%d, author=%s", post.ID, user.Username)
	return post, nil
}

func (uc *postUseCase) FormChoices() ([]*entity.Category, []*entity.Location, error) {
	categories, err := uc.categoryRepo.ListPublished()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	locations, err := uc.locationRepo.ListPublished()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return categories, locations, nil
}

// checkChoices accepts only published categories and locations.
func (uc *postUseCase) checkChoices(input PostInput) error {
	if input.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*input.CategoryID)
		if errors.Is(err, entity.ErrNotFound) || (err == nil && !category.IsPublished) {
			return fieldError("category", ErrInvalidChoice)
		}
		if err != nil {
			return err
		}
	}
	if input.LocationID != nil {
		location, err := uc.locationRepo.GetByID(*input.LocationID)
		if errors.Is(err, entity.ErrNotFound) || (err == nil && !location.IsPublished) {
			return fieldError("location", ErrInvalidChoice)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func (uc *postUseCase) storeImage(post *entity.Post, author *entity.User, file *multipart.FileHeader) error {
	if uc.images == nil {
		uc.logger.Warn("Image upload rejected for user=%d: storage is not configured", author.ID)
		return fieldError("image", ErrInvalidImage)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := imageExtensions[ext]
	if !ok {
		return fieldError("image", ErrInvalidImage)
	}
	if header := file.Header.Get("Content-Type"); strings.HasPrefix(header, "image/") {
		contentType = header
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("posts_images/%d/%s%s", author.ID, uuid.New().String(), ext)
	url, err := uc.images.UploadFile(key, src, contentType)
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}

	post.Image = url
	post.ImageKey = key
	return nil
}

func (uc *postUseCase) removeImage(key string) {
	if key == "" || uc.images == nil {
		return
	}
	if err := uc.images.DeleteFile(key); err != nil {
		uc.logger.Error("Failed to delete image %s: %v", key, err)
	}
}
