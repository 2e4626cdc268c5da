package middleware

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"todo-be/internal/apperror"
)

// CSRF cookie and the places a client may echo it
const (
	CSRFCookieName = "XSRF-TOKEN"
	csrfHeader     = "X-XSRF-TOKEN"
	csrfAltHeader  = "X-CSRF-Token"
	csrfTokenKey   = "csrfToken"
)

// CSRF implements double-submit cookie protection. Every response carries an
// XSRF-TOKEN cookie, and unsafe methods must send the same value back in a
// header or the _csrf field of a JSON body.
func CSRF(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieToken, _ := c.Cookie(CSRFCookieName)
		token := cookieToken
		if token == "" {
			token = rand.Text()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, token, 0, "/", "", secure, false)
		}
		c.Set(csrfTokenKey, token)

		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		submitted, err := submittedCSRFToken(c)
		if IsBodyTooLarge(err) {
			_ = c.Error(PayloadTooLarge())
			c.Abort()
			return
		}
		if cookieToken == "" || submitted == "" ||
			subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
			_ = c.Error(&apperror.ForbiddenError{Message: "Invalid or missing CSRF token"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRFToken returns the token issued for the current request
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfTokenKey)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// submittedCSRFToken looks in the headers first, then peeks at a JSON body
// and restores it for the handler. Only a failed body read is an error.
func submittedCSRFToken(c *gin.Context) (string, error) {
	if v := c.GetHeader(csrfHeader); v != "" {
		return v, nil
	}
	if v := c.GetHeader(csrfAltHeader); v != "" {
		return v, nil
	}
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		return "", nil
	}

	data, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	var body struct {
		CSRF string `json:"_csrf"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", nil
	}
	return body.CSRF, nil
}
