package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

// bindOptionalJSON binds the body when there is one. An absent body leaves
// payload untouched.
func bindOptionalJSON(c *gin.Context, payload any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(payload); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
