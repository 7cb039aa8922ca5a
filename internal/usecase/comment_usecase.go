package usecase

import (
	"fmt"
	"time"

	"blogicum/internal/authz"
	"blogicum/internal/entity"
	"blogicum/internal/repo/persistent"
	"blogicum/pkg/logger"
)

type CommentUseCase interface {
	AddComment(postID uint, author *entity.User, text string) (*entity.Comment, error)
	GetOwnedComment(postID, commentID uint, user *entity.User) (*entity.Comment, error)
	UpdateComment(postID, commentID uint, user *entity.User, text string) (*entity.Comment, error)
	DeleteComment(postID, commentID uint, user *entity.User) error
}

type commentUseCase struct {
	postRepo    persistent.PostRepository
	commentRepo persistent.CommentRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewCommentUseCase(postRepo persistent.PostRepository, commentRepo persistent.CommentRepository, logger *logger.Logger) CommentUseCase {
	return &commentUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// AddComment only accepts comments on posts the author can see.
func (uc *commentUseCase) AddComment(postID uint, author *entity.User, text string) (*entity.Comment, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(author, post) && !post.IsVisibleAt(uc.now()) {
		return nil, entity.ErrNotFound
	}

	comment := &entity.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: author.ID,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.Author = author
	return comment, nil
}

func (uc *commentUseCase) GetOwnedComment(postID, commentID uint, user *entity.User) (*entity.Comment, error) {
	comment, err := uc.commentRepo.GetByPost(postID, commentID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(user, comment) {
		return nil, ErrNotOwner
	}
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(postID, commentID uint, user *entity.User, text string) (*entity.Comment, error) {
	comment, err := uc.GetOwnedComment(postID, commentID, user)
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := uc.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(postID, commentID uint, user *entity.User) error {
	comment, err := uc.GetOwnedComment(postID, commentID, user)
	if err != nil {
		return err
	}

	if err := uc.commentRepo.Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	uc.logger.Info("Comment deleted: id=%d, post=%d", comment.ID, postID)
	return nil
}
