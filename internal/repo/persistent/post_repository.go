package persistent

import (
	"errors"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows the staff listing of posts.
type PostFilter struct {
	Search      string
	IsPublished *bool
	CategoryID  *uint
}

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id uint) (*entity.Post, error)
	ListVisible(now time.Time, categoryID *uint, limit, offset int) ([]*entity.Post, error)
	CountVisible(now time.Time, categoryID *uint) (int64, error)
	ListByAuthor(authorID uint, limit, offset int) ([]*entity.Post, error)
	CountByAuthor(authorID uint) (int64, error)
	Update(post *entity.Post) error
	Delete(id uint) error
	List(filter PostFilter, limit, offset int) ([]*entity.Post, int64, error)
	SetPublished(id uint, published bool) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// visibleAt keeps posts that are published, due, and either uncategorized
// or in a published category.
func visibleAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ? AND posts.pub_date <= ?", true, now).
			Where("posts.category_id IS NULL OR categories.is_published = ?", true)
	}
}

func inCategory(categoryID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if categoryID == nil {
			return db
		}
		return db.Where("posts.category_id = ?", *categoryID)
	}
}

func withCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count")
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("Location")
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			return db.Limit(limit).Offset(offset)
		}
		return db
	}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Omit(clause.Associations).Create(postModel).Error; err != nil {
		return err
	}
	post.ID = postModel.ID
	post.CreatedAt = postModel.CreatedAt
	return nil
}

func (r *postRepository) GetByID(id uint) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Scopes(withRelations).Where("posts.id = ?", id).First(&postModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) ListVisible(now time.Time, categoryID *uint, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.Model(&model.PostModel{}).
		Scopes(visibleAt(now), inCategory(categoryID), withCommentCount, withRelations, paginate(limit, offset)).
		Order("posts.pub_date DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return ToPostEntities(postModels), nil
}

func (r *postRepository) CountVisible(now time.Time, categoryID *uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).
		Scopes(visibleAt(now), inCategory(categoryID)).
		Count(&count).Error
	return count, err
}

func (r *postRepository) ListByAuthor(authorID uint, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.Model(&model.PostModel{}).
		Scopes(withCommentCount, withRelations, paginate(limit, offset)).
		Where("posts.author_id = ?", authorID).
		Order("posts.pub_date DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return ToPostEntities(postModels), nil
}

func (r *postRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	return r.db.Omit(clause.Associations).Save(postModel).Error
}

// Delete removes the post and its comments in one transaction.
func (r *postRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.PostModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
}

func applyPostFilter(db *gorm.DB, filter PostFilter) *gorm.DB {
	query := db.Model(&model.PostModel{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("posts.title ILIKE ? OR posts.text ILIKE ?", like, like)
	}
	if filter.IsPublished != nil {
		query = query.Where("posts.is_published = ?", *filter.IsPublished)
	}
	return query.Scopes(inCategory(filter.CategoryID))
}

func (r *postRepository) List(filter PostFilter, limit, offset int) ([]*entity.Post, int64, error) {
	var total int64
	if err := applyPostFilter(r.db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var postModels []model.PostModel
	err := applyPostFilter(r.db, filter).
		Scopes(withCommentCount, withRelations, paginate(limit, offset)).
		Order("posts.pub_date DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, 0, err
	}
	return ToPostEntities(postModels), total, nil
}

func (r *postRepository) SetPublished(id uint, published bool) error {
	result := r.db.Model(&model.PostModel{}).Where("id = ?", id).Update("is_published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
