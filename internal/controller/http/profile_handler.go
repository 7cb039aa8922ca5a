package http

import (
	"errors"
	"net/http"

	"blogicum/internal/usecase"
	"blogicum/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	authUseCase    usecase.AuthUseCase
	cookies        SessionCookies
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, authUseCase usecase.AuthUseCase, cookies SessionCookies, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		authUseCase:    authUseCase,
		cookies:        cookies,
		logger:         logger,
	}
}

func (h *ProfileHandler) Profile(c *gin.Context) {
	profile, err := h.profileUseCase.GetProfile(c.Param("username"), c.Query("page"), currentUser(c))
	if err != nil {
		renderError(c, h.logger, "get profile", err)
		return
	}

	renderPage(c, http.StatusOK, "blog/profile.html", gin.H{
		"profile":  profile.User,
		"posts":    profile.Posts,
		"page_obj": profile.Page,
		"is_owner": profile.IsOwner,
	})
}

func (h *ProfileHandler) EditProfile(c *gin.Context) {
	username := c.Param("username")
	user := currentUser(c)

	profile, err := h.profileUseCase.GetEditableProfile(username, user)
	if errors.Is(err, usecase.ErrNotOwner) {
		c.Redirect(http.StatusFound, "/profile/"+pathEscape(username)+"/")
		return
	}
	if err != nil {
		renderError(c, h.logger, "get profile", err)
		return
	}

	form := ProfileForm{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Username:  profile.Username,
	}
	errs := FormErrors{}

	if c.Request.Method == http.MethodPost {
		form = ProfileForm{}
		if errs = bindForm(c, &form); errs.Empty() {
			updated, err := h.profileUseCase.UpdateProfile(username, user, usecase.ProfileInput{
				Username:  form.Username,
				FirstName: form.FirstName,
				LastName:  form.LastName,
			})
			if err == nil {
				c.Redirect(http.StatusFound, profileURL(updated))
				return
			}
			if !addUseCaseError(errs, err) {
				renderError(c, h.logger, "update profile", err)
				return
			}
		}
	}

	renderPage(c, http.StatusOK, "blog/user.html", gin.H{
		"profile": profile,
		"form":    form,
		"errors":  errs,
	})
}

// ChangePassword keeps the current browser logged in by issuing a new
// session; sessions elsewhere stop validating.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	username := c.Param("username")
	user := currentUser(c)

	profile, err := h.profileUseCase.GetEditableProfile(username, user)
	if errors.Is(err, usecase.ErrNotOwner) {
		c.Redirect(http.StatusFound, "/profile/"+pathEscape(username)+"/")
		return
	}
	if err != nil {
		renderError(c, h.logger, "get profile", err)
		return
	}

	errs := FormErrors{}
	if c.Request.Method == http.MethodPost {
		var form PasswordChangeForm
		if errs = bindForm(c, &form); errs.Empty() {
			updated, err := h.profileUseCase.ChangePassword(username, user, usecase.PasswordChangeInput{
				OldPassword:  form.OldPassword,
				NewPassword1: form.NewPassword1,
				NewPassword2: form.NewPassword2,
			})
			if err == nil {
				token, err := h.authUseCase.IssueSession(updated)
				if err != nil {
					renderError(c, h.logger, "issue session", err)
					return
				}
				h.cookies.Set(c, token)
				c.Redirect(http.StatusFound, profileURL(updated)+"password/done/")
				return
			}
			if !addUseCaseError(errs, err) {
				renderError(c, h.logger, "change password", err)
				return
			}
		}
	}

	renderPage(c, http.StatusOK, "registration/password_change_form.html", gin.H{
		"profile": profile,
		"errors":  errs,
	})
}

func (h *ProfileHandler) PasswordChangeDone(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.profileUseCase.GetEditableProfile(username, currentUser(c))
	if errors.Is(err, usecase.ErrNotOwner) {
		c.Redirect(http.StatusFound, "/profile/"+pathEscape(username)+"/")
		return
	}
	if err != nil {
		renderError(c, h.logger, "get profile", err)
		return
	}

	renderPage(c, http.StatusOK, "registration/password_change_done.html", gin.H{
		"profile": profile,
	})
}
