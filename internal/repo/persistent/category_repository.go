package persistent

import (
	"errors"

	"blogicum/internal/entity"
	"blogicum/internal/model"

	"gorm.io/gorm"
)

// CatalogFilter narrows the staff listing of categories and locations.
type CatalogFilter struct {
	Search      string
	IsPublished *bool
}

type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id uint) (*entity.Category, error)
	GetPublishedBySlug(slug string) (*entity.Category, error)
	ListPublished() ([]*entity.Category, error)
	List(filter CatalogFilter, limit, offset int) ([]*entity.Category, int64, error)
	SlugExists(slug string) (bool, error)
	SetPublished(id uint, published bool) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *entity.Category) error {
	categoryModel := ToCategoryModel(category)
	if err := r.db.Create(categoryModel).Error; err != nil {
		return err
	}
	*category = *ToCategoryEntity(categoryModel)
	return nil
}

func (r *categoryRepository) GetByID(id uint) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	err := r.db.Where("id = ?", id).First(&categoryModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) GetPublishedBySlug(slug string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	err := r.db.Where("slug = ? AND is_published = ?", slug, true).First(&categoryModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) ListPublished() ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	if err := r.db.Where("is_published = ?", true).Order("title ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return toCategoryEntities(categoryModels), nil
}

func applyCategoryFilter(db *gorm.DB, filter CatalogFilter) *gorm.DB {
	query := db.Model(&model.CategoryModel{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR slug ILIKE ?", like, like)
	}
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}
	return query
}

func (r *categoryRepository) List(filter CatalogFilter, limit, offset int) ([]*entity.Category, int64, error) {
	var total int64
	if err := applyCategoryFilter(r.db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categoryModels []model.CategoryModel
	err := applyCategoryFilter(r.db, filter).
		Scopes(paginate(limit, offset)).
		Order("created_at DESC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, 0, err
	}
	return toCategoryEntities(categoryModels), total, nil
}

func (r *categoryRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CategoryModel{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) SetPublished(id uint, published bool) error {
	result := r.db.Model(&model.CategoryModel{}).Where("id = ?", id).Update("is_published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func toCategoryEntities(models []model.CategoryModel) []*entity.Category {
	categories := make([]*entity.Category, len(models))
	for i := range models {
		categories[i] = ToCategoryEntity(&models[i])
	}
	return categories
}

type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id uint) (*entity.Location, error)
	ListPublished() ([]*entity.Location, error)
	List(filter CatalogFilter, limit, offset int) ([]*entity.Location, int64, error)
	SetPublished(id uint, published bool) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(location *entity.Location) error {
	locationModel := ToLocationModel(location)
	if err := r.db.Create(locationModel).Error; err != nil {
		return err
	}
	*location = *ToLocationEntity(locationModel)
	return nil
}

func (r *locationRepository) GetByID(id uint) (*entity.Location, error) {
	var locationModel model.LocationModel
	err := r.db.Where("id = ?", id).First(&locationModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToLocationEntity(&locationModel), nil
}

func (r *locationRepository) ListPublished() ([]*entity.Location, error) {
	var locationModels []model.LocationModel
	if err := r.db.Where("is_published = ?", true).Order("name ASC").Find(&locationModels).Error; err != nil {
		return nil, err
	}
	return toLocationEntities(locationModels), nil
}

func applyLocationFilter(db *gorm.DB, filter CatalogFilter) *gorm.DB {
	query := db.Model(&model.LocationModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}
	return query
}

func (r *locationRepository) List(filter CatalogFilter, limit, offset int) ([]*entity.Location, int64, error) {
	var total int64
	if err := applyLocationFilter(r.db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var locationModels []model.LocationModel
	err := applyLocationFilter(r.db, filter).
		Scopes(paginate(limit, offset)).
		Order("created_at DESC").
		Find(&locationModels).Error
	if err != nil {
		return nil, 0, err
	}
	return toLocationEntities(locationModels), total, nil
}

func (r *locationRepository) SetPublished(id uint, published bool) error {
	result := r.db.Model(&model.LocationModel{}).Where("id = ?", id).Update("is_published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func toLocationEntities(models []model.LocationModel) []*entity.Location {
	locations := make([]*entity.Location, len(models))
	for i := range models {
		locations[i] = ToLocationEntity(&models[i])
	}
	return locations
}
