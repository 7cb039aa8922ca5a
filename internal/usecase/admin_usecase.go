package usecase

import (
	"fmt"
	"strings"

	"blogicum/internal/entity"
	"blogicum/internal/repo/persistent"
	"blogicum/pkg/logger"
	"blogicum/pkg/paginator"
	"blogicum/pkg/slug"
)

type CategoryInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished bool
}

type LocationInput struct {
	Name        string
	IsPublished bool
}

type CategoryList struct {
	Items []*entity.Category
	Page  paginator.Page
}

type LocationList struct {
	Items []*entity.Location
	Page  paginator.Page
}

// AdminUseCase backs the staff API. Callers check is_staff before using it.
type AdminUseCase interface {
	ListCategories(filter persistent.CatalogFilter, page string) (*CategoryList, error)
	CreateCategory(input CategoryInput) (*entity.Category, error)
	SetCategoryPublished(id uint, published bool) (*entity.Category, error)
	ListLocations(filter persistent.CatalogFilter, page string) (*LocationList, error)
	CreateLocation(input LocationInput) (*entity.Location, error)
	SetLocationPublished(id uint, published bool) (*entity.Location, error)
	ListPosts(filter persistent.PostFilter, page string) (*PostPage, error)
	SetPostPublished(id uint, published bool) (*entity.Post, error)
}

type adminUseCase struct {
	categoryRepo persistent.CategoryRepository
	locationRepo persistent.LocationRepository
	postRepo     persistent.PostRepository
	pageSize     int
	logger       *logger.Logger
}

func NewAdminUseCase(
	categoryRepo persistent.CategoryRepository,
	locationRepo persistent.LocationRepository,
	postRepo persistent.PostRepository,
	pageSize int,
	logger *logger.Logger,
) AdminUseCase {
	return &adminUseCase{
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		postRepo:     postRepo,
		pageSize:     pageSize,
		logger:       logger,
	}
}

func (uc *adminUseCase) ListCategories(filter persistent.CatalogFilter, raw string) (*CategoryList, error) {
	items, total, err := uc.categoryRepo.List(filter, uc.pageSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	page := paginator.New(total, uc.pageSize, raw)
	if page.Number > 1 {
		items, _, err = uc.categoryRepo.List(filter, page.Limit(), page.Offset())
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
	}
	return &CategoryList{Items: items, Page: page}, nil
}

// CreateCategory fills an empty slug from the title.
func (uc *adminUseCase) CreateCategory(input CategoryInput) (*entity.Category, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fieldError("title", fmt.Errorf("this field is required"))
	}

	categorySlug := strings.TrimSpace(input.Slug)
	if categorySlug == "" {
		categorySlug = slug.Make(title)
	}
	if !slug.Valid(categorySlug) {
		return nil, fieldError("slug", ErrInvalidSlug)
	}

	exists, err := uc.categoryRepo.SlugExists(categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return nil, fieldError("slug", ErrSlugTaken)
	}

	category := &entity.Category{
		Title:       title,
		Description: input.Description,
		Slug:        categorySlug,
		IsPublished: input.IsPublished,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	uc.logger.Info("Category created: id=%d, slug=%s", category.ID, category.Slug)
	return category, nil
}

func (uc *adminUseCase) SetCategoryPublished(id uint, published bool) (*entity.Category, error) {
	if err := uc.categoryRepo.SetPublished(id, published); err != nil {
		return nil, err
	}
	return uc.categoryRepo.GetByID(id)
}

func (uc *adminUseCase) ListLocations(filter persistent.CatalogFilter, raw string) (*LocationList, error) {
	items, total, err := uc.locationRepo.List(filter, uc.pageSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	page := paginator.New(total, uc.pageSize, raw)
	if page.Number > 1 {
		items, _, err = uc.locationRepo.List(filter, page.Limit(), page.Offset())
		if err != nil {
			return nil, fmt.Errorf("failed to list locations: %w", err)
		}
	}
	return &LocationList{Items: items, Page: page}, nil
}

func (uc *adminUseCase) CreateLocation(input LocationInput) (*entity.Location, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fieldError("name", fmt.Errorf("this field is required"))
	}

	location := &entity.Location{Name: name, IsPublished: input.IsPublished}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return location, nil
}

func (uc *adminUseCase) SetLocationPublished(id uint, published bool) (*entity.Location, error) {
	if err := uc.locationRepo.SetPublished(id, published); err != nil {
		return nil, err
	}
	return uc.locationRepo.GetByID(id)
}

func (uc *adminUseCase) ListPosts(filter persistent.PostFilter, raw string) (*PostPage, error) {
	posts, total, err := uc.postRepo.List(filter, uc.pageSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	page := paginator.New(total, uc.pageSize, raw)
	if page.Number > 1 {
		posts, _, err = uc.postRepo.List(filter, page.Limit(), page.Offset())
		if err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

func (uc *adminUseCase) SetPostPublished(id uint, published bool) (*entity.Post, error) {
	if err := uc.postRepo.SetPublished(id, published); err != nil {
		return nil, err
	}
	uc.logger.Info("Post publication changed: id=%d, published=%t", id, published)
	return uc.postRepo.GetByID(id)
}
