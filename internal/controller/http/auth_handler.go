package http

import (
	"errors"
	"net/http"

	"blogicum/internal/usecase"
	"blogicum/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	cookies     SessionCookies
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, cookies SessionCookies, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookies:     cookies,
		logger:      logger,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	next := safeNext(c.Query("next"))
	form := LoginForm{}
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		if n := safeNext(c.PostForm("next")); n != "" {
			next = n
		}
		if errs = bindForm(c, &form); errs.Empty() {
			user, err := h.authUseCase.Login(form.Username, form.Password)
			switch {
			case err == nil:
				token, err := h.authUseCase.IssueSession(user)
				if err != nil {
					renderError(c, h.logger, "issue session", err)
					return
				}
				h.cookies.Set(c, token)
				if next == "" {
					next = "/"
				}
				c.Redirect(http.StatusFound, next)
				return
			case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrInactiveUser):
				errs.Add("__all__", "Пожалуйста, введите правильные имя пользователя и пароль.")
			default:
				renderError(c, h.logger, "log in", err)
				return
			}
		}
	}

	renderPage(c, http.StatusOK, "registration/login.html", gin.H{
		"form":   form,
		"errors": errs,
		"next":   next,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		if err := h.authUseCase.Logout(c.Request.Context(), token); err != nil {
			h.logger.Error("Failed to revoke session: %v", err)
		}
	}
	h.cookies.Clear(c)
	c.Set(userContextKey, nil)

	renderPage(c, http.StatusOK, "registration/logged_out.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	form := RegistrationForm{}
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		if errs = bindForm(c, &form); errs.Empty() {
			_, err := h.authUseCase.Register(usecase.RegisterInput{
				Username:  form.Username,
				Email:     form.Email,
				Password1: form.Password1,
				Password2: form.Password2,
			})
			if err == nil {
				c.Redirect(http.StatusFound, loginURL)
				return
			}
			if !addUseCaseError(errs, err) {
				renderError(c, h.logger, "register", err)
				return
			}
		}
	}

	renderPage(c, http.StatusOK, "registration/registration_form.html", gin.H{
		"form":   form,
		"errors": errs,
	})
}
