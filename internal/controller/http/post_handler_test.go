package http

import (
	"errors"
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

var (
	author  = &entity.User{ID: 1, Username: "author"}
	visitor = &entity.User{ID: 2, Username: "visitor"}
	pubDate = time.Date(2024, 3, 8, 10, 30, 0, 0, time.UTC)
)

func samplePost() *entity.Post {
	return &entity.Post{
		ID:          5,
		Title:       "Morning in the mountains",
		Text:        "First line\nsecond line",
		PubDate:     pubDate,
		IsPublished: true,
		AuthorID:    author.ID,
		Author:      author,
	}
}

func postRouter(t *testing.T, user *entity.User, posts *MockPostUseCase, comments *MockCommentUseCase) http.Handler {
	handler := NewPostHandler(posts, comments, testLogger())
	router := setupTestRouter(t, user)
	router.GET("/", handler.Index)
	router.GET("/category/:slug/", handler.CategoryPosts)
	router.GET("/posts/:id/", handler.PostDetail)
	router.POST("/posts/:id/", handler.PostDetail)
	router.GET("/posts/create/", handler.CreatePost)
	router.POST("/posts/create/", handler.CreatePost)
	router.GET("/posts/:id/edit/", handler.EditPost)
	router.POST("/posts/:id/edit/", handler.EditPost)
	router.GET("/posts/:id/delete/", handler.DeletePost)
	router.POST("/posts/:id/delete/", handler.DeletePost)
	return router
}

func TestIndex(t *testing.T) {
	posts := new(MockPostUseCase)
	post := samplePost()
	post.CommentCount = 3
	posts.On("Feed", "2").Return(&usecase.PostPage{
		Posts: []*entity.Post{post},
		Page:  paginator.New(15, 10, "2"),
	}, nil)

	w := get(postRouter(t, nil, posts, nil), "/?page=2")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Morning in the mountains")
	assert.Contains(t, w.Body.String(), "Комментарии (3)")
	assert.Contains(t, w.Body.String(), "Страница 2 из 2")
}

func TestCategoryPosts_NotFound(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("CategoryFeed", "hidden", "").Return(nil, nil, entity.ErrNotFound)

	w := get(postRouter(t, nil, posts, nil), "/category/hidden/")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Ошибка 404")
}

func TestCategoryPosts(t *testing.T) {
	posts := new(MockPostUseCase)
	category := &entity.Category{ID: 2, Title: "Travel", Slug: "travel", Description: "Trips", IsPublished: true}
	posts.On("CategoryFeed", "travel", "").Return(category, &usecase.PostPage{
		Posts: []*entity.Post{samplePost()},
		Page:  paginator.New(1, 10, ""),
	}, nil)

	w := get(postRouter(t, nil, posts, nil), "/category/travel/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Trips")
}

func TestPostDetail(t *testing.T) {
	posts := new(MockPostUseCase)
	comments := []*entity.Comment{{ID: 9, Text: "Great", PostID: 5, AuthorID: visitor.ID, Author: visitor, CreatedAt: pubDate}}
	posts.On("GetPost", uint(5), visitor).Return(samplePost(), comments, nil)

	w := get(postRouter(t, visitor, posts, nil), "/posts/5/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "First line<br>second line")
	assert.Contains(t, body, "/posts/5/edit_comment/9/")
	assert.NotContains(t, body, "/posts/5/edit/")
}

func TestPostDetail_OwnerSeesActions(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("GetPost", uint(5), author).Return(samplePost(), []*entity.Comment{}, nil)

	w := get(postRouter(t, author, posts, nil), "/posts/5/")

	assert.Contains(t, w.Body.String(), "/posts/5/edit/")
	assert.Contains(t, w.Body.String(), "/posts/5/delete/")
}

func TestPostDetail_CommentActionsOnlyForCommentAuthor(t *testing.T) {
	comments := []*entity.Comment{{ID: 9, Text: "Great", PostID: 5, AuthorID: visitor.ID, Author: visitor, CreatedAt: pubDate}}

	for _, viewer := range []*entity.User{nil, author} {
		posts := new(MockPostUseCase)
		posts.On("GetPost", uint(5), viewer).Return(samplePost(), comments, nil)

		w := get(postRouter(t, viewer, posts, nil), "/posts/5/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "/posts/5/edit_comment/9/")
	}
}

func TestPostDetail_NotFound(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("GetPost", uint(5), (*entity.User)(nil)).Return(nil, nil, entity.ErrNotFound)

	w := get(postRouter(t, nil, posts, nil), "/posts/5/")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostDetail_BadID(t *testing.T) {
	w := get(postRouter(t, nil, new(MockPostUseCase), nil), "/posts/abc/")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostDetail_AnonymousCommentRedirectsToLogin(t *testing.T) {
	comments := new(MockCommentUseCase)

	w := postForm(postRouter(t, nil, new(MockPostUseCase), comments), "/posts/5/", url.Values{"text": {"hi"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fposts%2F5%2F", w.Header().Get("Location"))
	comments.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostDetail_AddsComment(t *testing.T) {
	comments := new(MockCommentUseCase)
	comments.On("AddComment", uint(5), visitor, "hi").Return(&entity.Comment{ID: 1}, nil)

	w := postForm(postRouter(t, visitor, new(MockPostUseCase), comments), "/posts/5/", url.Values{"text": {"hi"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/5/", w.Header().Get("Location"))
}

func TestPostDetail_InvalidCommentRerenders(t *testing.T) {
	posts := new(MockPostUseCase)
	comments := new(MockCommentUseCase)
	posts.On("GetPost", uint(5), visitor).Return(samplePost(), []*entity.Comment{}, nil)

	w := postForm(postRouter(t, visitor, posts, comments), "/posts/5/", url.Values{"text": {""}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Обязательное поле.")
	comments.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_Form(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("FormChoices").Return([]*entity.Category{{ID: 2, Title: "Travel"}}, []*entity.Location{{ID: 3, Name: "Island"}}, nil)

	w := get(postRouter(t, author, posts, nil), "/posts/create/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Travel")
	assert.Contains(t, w.Body.String(), "Island")
}

func TestCreatePost_RedirectsToProfile(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("CreatePost", author, mock.MatchedBy(func(in usecase.PostInput) bool {
		return in.Title == "Hello" && in.PubDate.Equal(pubDate) && in.CategoryID != nil && *in.CategoryID == 2 && in.LocationID == nil && in.IsPublished
	})).Return(samplePost(), nil)

	w := postForm(postRouter(t, author, posts, nil), "/posts/create/", url.Values{
		"title":        {"Hello"},
		"text":         {"Body"},
		"pub_date":     {"2024-03-08T10:30"},
		"category":     {"2"},
		"location":     {""},
		"is_published": {"true"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/", w.Header().Get("Location"))
}

func TestCreatePost_ValidationErrors(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("FormChoices").Return([]*entity.Category{}, []*entity.Location{}, nil)

	w := postForm(postRouter(t, author, posts, nil), "/posts/create/", url.Values{
		"title":    {""},
		"text":     {"Body"},
		"pub_date": {"yesterday"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Обязательное поле.")
	assert.Contains(t, w.Body.String(), "Введите правильную дату и время.")
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestCreatePost_UseCaseValidationError(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("FormChoices").Return([]*entity.Category{}, []*entity.Location{}, nil)
	posts.On("CreatePost", author, mock.Anything).Return(nil, &usecase.ValidationError{Field: "category", Err: usecase.ErrInvalidChoice})

	w := postForm(postRouter(t, author, posts, nil), "/posts/create/", url.Values{
		"title": {"Hello"}, "text": {"Body"}, "pub_date": {"2024-03-08T10:30"}, "category": {"9"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Выберите корректный вариант.")
}

func TestCreatePost_UnexpectedError(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("CreatePost", author, mock.Anything).Return(nil, errors.New("db down"))

	w := postForm(postRouter(t, author, posts, nil), "/posts/create/", url.Values{
		"title": {"Hello"}, "text": {"Body"}, "pub_date": {"2024-03-08T10:30"},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Ошибка 500")
}

func TestEditPost_NonOwnerRedirects(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("GetOwnedPost", uint(5), visitor).Return(nil, usecase.ErrNotOwner)

	w := get(postRouter(t, visitor, posts, nil), "/posts/5/edit/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/5/", w.Header().Get("Location"))
}

func TestEditPost_PrefillsForm(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("GetOwnedPost", uint(5), author).Return(samplePost(), nil)
	posts.On("FormChoices").Return([]*entity.Category{}, []*entity.Location{}, nil)

	w := get(postRouter(t, author, posts, nil), "/posts/5/edit/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Morning in the mountains"`)
	assert.Contains(t, w.Body.String(), `value="2024-03-08T10:30"`)
}

func TestEditPost_Saves(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("GetOwnedPost", uint(5), author).Return(samplePost(), nil)
	posts.On("UpdatePost", uint(5), author, mock.MatchedBy(func(in usecase.PostInput) bool {
		return in.Title == "New title" && in.ClearImage && !in.IsPublished
	})).Return(samplePost(), nil)

	w := postForm(postRouter(t, author, posts, nil), "/posts/5/edit/", url.Values{
		"title": {"New title"}, "text": {"Body"}, "pub_date": {"2024-03-08T10:30"}, "image-clear": {"true"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/5/", w.Header().Get("Location"))
}

func TestDeletePost_Confirmation(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("GetOwnedPost", uint(5), author).Return(samplePost(), nil)

	w := get(postRouter(t, author, posts, nil), "/posts/5/delete/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Удалить публикацию?")
	posts.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}

func TestDeletePost(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("DeletePost", uint(5), author).Return(samplePost(), nil)

	w := postForm(postRouter(t, author, posts, nil), "/posts/5/delete/", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/", w.Header().Get("Location"))
}

func TestDeletePost_NonOwner(t *testing.T) {
	posts := new(MockPostUseCase)
	posts.On("DeletePost", uint(5), visitor).Return(nil, usecase.ErrNotOwner)

	w := postForm(postRouter(t, visitor, posts, nil), "/posts/5/delete/", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/5/", w.Header().Get("Location"))
}
