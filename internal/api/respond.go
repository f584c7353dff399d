package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"kinkatsu/workout-log/internal/action"
	"kinkatsu/workout-log/internal/repository"
)

const maxFormMemory = 8 << 20

// statusForKind maps a failed action to its HTTP status.
func statusForKind(kind action.Kind) int {
	switch kind {
	case action.KindAuthRequired:
		return http.StatusUnauthorized
	case action.KindValidation:
		return http.StatusBadRequest
	case action.KindDuplicateName:
		return http.StatusConflict
	case action.KindStoreError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeResult renders an action result. okStatus is used on success.
func writeResult(c *gin.Context, res action.Result, okStatus int) {
	if res.OK() {
		c.JSON(okStatus, res)
		return
	}
	c.JSON(statusForKind(res.Kind), res)
}

// isJSON reports whether the request body should be decoded as JSON rather
// than as a form.
func isJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEJSON)
}

// formValues returns the submitted form fields for urlencoded and multipart
// bodies. Query parameters are not included.
func formValues(c *gin.Context) (url.Values, error) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		return c.Request.MultipartForm.Value, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

// abortWithServiceError maps read-path errors that have no dedicated
// status to 503 for store failures and 500 otherwise.
func abortWithServiceError(c *gin.Context, err error, message string) {
	if errors.Is(err, repository.ErrStore) {
		abortWithError(c, http.StatusServiceUnavailable, message)
		return
	}
	abortWithError(c, http.StatusInternalServerError, message)
}
