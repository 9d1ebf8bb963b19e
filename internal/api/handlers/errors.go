package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/validation"
)

// respondError maps service errors onto status codes. Unknown errors are
// attached to the context for the error logger and reported as 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrFieldNotFound),
		errors.Is(err, model.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrAlreadyExists),
		errors.Is(err, model.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNameRequired),
		errors.Is(err, model.ErrInvalidSort),
		errors.Is(err, model.ErrInvalidLabelOption),
		errors.Is(err, model.ErrReservedID),
		errors.Is(err, field.ErrNameRequired),
		errors.Is(err, field.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case validation.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validation.GetValidationErrors(err)})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// readBody returns the raw request body and the updatedAt precondition,
// taken from the If-Match header or else the body's "updatedAt" key.
func readBody(c *gin.Context) ([]byte, string, error) {
	data, err := c.GetRawData()
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		data = []byte("{}")
	}

	if ifMatch := strings.Trim(c.GetHeader("If-Match"), `"`); ifMatch != "" {
		return data, ifMatch, nil
	}

	var head struct {
		UpdatedAt string `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, "", err
	}
	return data, head.UpdatedAt, nil
}
