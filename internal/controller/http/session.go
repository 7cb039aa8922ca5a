package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/usecase"
	"blogicum/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "sessionid"
	userContextKey    = "user"
	loginURL          = "/auth/login/"
)

// SessionMiddleware resolves the session cookie into the current user.
// Requests without a valid session continue anonymously.
func SessionMiddleware(authUseCase usecase.AuthUseCase, cookies SessionCookies, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := authUseCase.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(userContextKey, user)
			c.Set("user_id", user.ID)
		case errors.Is(err, usecase.ErrInvalidSession):
			cookies.Clear(c)
		default:
			log.Error("Failed to authenticate session: %v", err)
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *entity.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entity.User)
	return user
}

// RequireLogin sends anonymous users to the login page with a next parameter.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			redirectToLogin(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff guards the admin API.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			redirectToLogin(c)
			c.Abort()
			return
		}
		if !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, loginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
}

// SessionCookies writes and clears the session cookie.
type SessionCookies struct {
	Secure bool
	TTL    time.Duration
}

func (s SessionCookies) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(s.TTL.Seconds()), "/", "", s.Secure, true)
}

func (s SessionCookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", s.Secure, true)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}

func pathEscape(s string) string {
	return url.PathEscape(s)
}
