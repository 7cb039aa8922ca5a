package http

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const dateTimeLocalLayout = "2006-01-02T15:04"

// FormErrors maps a form field to its messages. "__all__" holds errors that
// belong to no single field.
type FormErrors map[string][]string

func (e FormErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FormErrors) Empty() bool {
	return len(e) == 0
}

type PostForm struct {
	Title       string `form:"title" binding:"required,max=256"`
	Text        string `form:"text" binding:"required"`
	PubDate     string `form:"pub_date" binding:"required"`
	IsPublished bool   `form:"is_published"`
	Category    string `form:"category"`
	Location    string `form:"location"`
	ImageClear  bool   `form:"image-clear"`
}

func postFormFrom(post *entity.Post) PostForm {
	form := PostForm{
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate.Format(dateTimeLocalLayout),
		IsPublished: post.IsPublished,
	}
	if post.CategoryID != nil {
		form.Category = strconv.FormatUint(uint64(*post.CategoryID), 10)
	}
	if post.LocationID != nil {
		form.Location = strconv.FormatUint(uint64(*post.LocationID), 10)
	}
	return form
}

// input converts the raw strings, recording conversion failures in errs.
func (f PostForm) input(errs FormErrors) usecase.PostInput {
	input := usecase.PostInput{
		Title:       strings.TrimSpace(f.Title),
		Text:        f.Text,
		IsPublished: f.IsPublished,
		ClearImage:  f.ImageClear,
	}

	if f.PubDate != "" {
		pubDate, err := time.ParseInLocation(dateTimeLocalLayout, f.PubDate, time.UTC)
		if err != nil {
			errs.Add("pub_date", "Введите правильную дату и время.")
		}
		input.PubDate = pubDate
	}

	var err error
	if input.CategoryID, err = parseOptionalID(f.Category); err != nil {
		errs.Add("category", "Выберите корректный вариант.")
	}
	if input.LocationID, err = parseOptionalID(f.Location); err != nil {
		errs.Add("location", "Выберите корректный вариант.")
	}
	return input
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

type ProfileForm struct {
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Username  string `form:"username" binding:"required,max=150"`
}

type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" binding:"required"`
	NewPassword1 string `form:"new_password1" binding:"required"`
	NewPassword2 string `form:"new_password2" binding:"required"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegistrationForm struct {
	Username  string `form:"username" binding:"required,max=150"`
	Email     string `form:"email" binding:"omitempty,email"`
	Password1 string `form:"password1" binding:"required"`
	Password2 string `form:"password2" binding:"required"`
}

var registerTagNames sync.Once

// bindForm binds the request into form and reports validation failures by
// form field name.
func bindForm(c *gin.Context, form any) FormErrors {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(field reflect.StructField) string {
				return strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			})
		}
	})

	errs := FormErrors{}
	err := c.ShouldBind(form)
	if err == nil {
		return errs
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs.Add("__all__", "Некорректные данные формы.")
		return errs
	}
	for _, fe := range validationErrors {
		errs.Add(fe.Field(), validationMessage(fe))
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "max":
		return fmt.Sprintf("Убедитесь, что это значение содержит не более %s символов.", fe.Param())
	case "email":
		return "Введите правильный адрес электронной почты."
	}
	return "Некорректное значение."
}

// addUseCaseError moves a use case validation error onto its field.
// It reports false for errors that are not validation errors.
func addUseCaseError(errs FormErrors, err error) bool {
	var verr *usecase.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	errs.Add(verr.Field, fieldMessage(verr.Err))
	return true
}

var fieldMessages = map[error]string{
	usecase.ErrUsernameTaken:    "Пользователь с таким именем уже существует.",
	usecase.ErrInvalidUsername:  "Введите правильное имя пользователя: только буквы, цифры и символы @/./+/-/_.",
	usecase.ErrPasswordMismatch: "Введенные пароли не совпадают.",
	usecase.ErrWrongPassword:    "Ваш старый пароль введен неправильно. Пожалуйста, введите его снова.",
	usecase.ErrPasswordTooShort: "Введённый пароль слишком короткий. Он должен содержать как минимум 8 символов.",
	usecase.ErrPasswordTooLong:  "Введённый пароль слишком длинный. Он должен занимать не более 72 байт.",
	usecase.ErrPasswordNumeric:  "Введённый пароль состоит только из цифр.",
	usecase.ErrPasswordSimilar:  "Введённый пароль слишком похож на имя пользователя.",
	usecase.ErrInvalidChoice:    "Выберите корректный вариант.",
	usecase.ErrInvalidImage:     "Загрузите правильное изображение.",
	usecase.ErrSlugTaken:        "Категория с таким идентификатором уже существует.",
	usecase.ErrInvalidSlug:      "Идентификатор может содержать только латинские буквы, цифры, дефис и подчёркивание.",
}

func fieldMessage(err error) string {
	for target, message := range fieldMessages {
		if errors.Is(err, target) {
			return message
		}
	}
	return err.Error()
}

func parseOptionalID(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid id %q", raw)
	}
	v := uint(id)
	return &v, nil
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
