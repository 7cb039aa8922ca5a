package persistent

import (
	"errors"

	"blogicum/internal/entity"
	"blogicum/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByPost(postID, commentID uint) (*entity.Comment, error)
	ListByPost(postID uint) ([]*entity.Comment, error)
	Update(comment *entity.Comment) error
	Delete(id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.Omit(clause.Associations).Create(commentModel).Error; err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}

func (r *commentRepository) GetByPost(postID, commentID uint) (*entity.Comment, error) {
	var commentModel model.CommentModel
	err := r.db.Preload("Author").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&commentModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) ListByPost(postID uint) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&commentModels).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *entity.Comment) error {
	return r.db.Model(&model.CommentModel{}).
		Where("id = ?", comment.ID).
		Update("text", comment.Text).Error
}

func (r *commentRepository) Delete(id uint) error {
	return r.db.Delete(&model.CommentModel{}, id).Error
}
