package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFFormField  = "csrfmiddlewaretoken"
	CSRFHeader     = "X-CSRFToken"
	CSRFContextKey = "csrf_token"

	csrfTokenBytes = 32
	csrfCookieAge  = 365 * 24 * 60 * 60
)

// CSRFMiddleware implements the double-submit cookie pattern. Every request
// gets a token cookie; unsafe methods must echo it back in the form field or
// header. onFailure renders the rejection and must abort the context.
func CSRFMiddleware(secure bool, onFailure gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookieName)
		if err != nil || len(token) != csrfTokenBytes*2 {
			token = newCSRFToken()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, token, csrfCookieAge, "/", "", secure, false)
			// A freshly issued cookie cannot be echoed back yet.
			if !isSafeMethod(c.Request.Method) {
				c.Set(CSRFContextKey, token)
				onFailure(c)
				return
			}
		}
		c.Set(CSRFContextKey, token)

		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFHeader)
		if submitted == "" {
			submitted = c.PostForm(CSRFFormField)
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			onFailure(c)
			return
		}

		c.Next()
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func newCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
