package persistent

import (
	"blogicum/internal/entity"
	"blogicum/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:         m.ID,
		Username:   m.Username,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		Password:   m.Password,
		IsStaff:    m.IsStaff,
		IsActive:   m.IsActive,
		DateJoined: m.DateJoined,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:         e.ID,
		Username:   e.Username,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Password:   e.Password,
		IsStaff:    e.IsStaff,
		IsActive:   e.IsActive,
		DateJoined: e.DateJoined,
	}
}

func ToCategoryEntity(m *model.CategoryModel) *entity.Category {
	if m == nil {
		return nil
	}

	return &entity.Category{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Slug:        m.Slug,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
	}
}

func ToCategoryModel(e *entity.Category) *model.CategoryModel {
	if e == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Slug:        e.Slug,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
	}
}

func ToLocationEntity(m *model.LocationModel) *entity.Location {
	if m == nil {
		return nil
	}

	return &entity.Location{
		ID:          m.ID,
		Name:        m.Name,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
	}
}

func ToLocationModel(e *entity.Location) *model.LocationModel {
	if e == nil {
		return nil
	}

	return &model.LocationModel{
		ID:          e.ID,
		Name:        e.Name,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:           m.ID,
		Title:        m.Title,
		Text:         m.Text,
		Image:        m.Image,
		ImageKey:     m.ImageKey,
		PubDate:      m.PubDate,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		AuthorID:     m.AuthorID,
		CategoryID:   m.CategoryID,
		LocationID:   m.LocationID,
		Author:       ToUserEntity(m.Author),
		Category:     ToCategoryEntity(m.Category),
		Location:     ToLocationEntity(m.Location),
		CommentCount: m.CommentCount,
	}
}

// ToPostModel maps only the post's own columns; associations are written
// through their foreign keys.
func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:          e.ID,
		Title:       e.Title,
		Text:        e.Text,
		Image:       e.Image,
		ImageKey:    e.ImageKey,
		PubDate:     e.PubDate,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
		AuthorID:    e.AuthorID,
		CategoryID:  e.CategoryID,
		LocationID:  e.LocationID,
	}
}

func ToPostEntities(models []model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, len(models))
	for i := range models {
		posts[i] = ToPostEntity(&models[i])
	}
	return posts
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		Text:      m.Text,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Author:    ToUserEntity(m.Author),
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		Text:      e.Text,
		PostID:    e.PostID,
		AuthorID:  e.AuthorID,
		CreatedAt: e.CreatedAt,
	}
}
