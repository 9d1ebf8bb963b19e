package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/query"
)

type FieldHandler struct {
	modelService *model.Service
}

func NewFieldHandler(modelService *model.Service) *FieldHandler {
	return &FieldHandler{modelService: modelService}
}

// Types lists every field type with its option catalog.
func (h *FieldHandler) Types(c *gin.Context) {
	out := make([]gin.H, 0, len(field.Types))
	for _, t := range field.Types {
		out = append(out, gin.H{"type": t, "options": field.Choices(t)})
	}
	c.JSON(http.StatusOK, gin.H{"types": out})
}

// NewState returns a fresh default field of the requested type. "range"
// yields the number preset rendered as a slider.
func (h *FieldHandler) NewState(c *gin.Context) {
	name := c.Param("type")
	if name == field.OptionRange {
		c.JSON(http.StatusOK, field.NewRangeFieldState())
		return
	}
	c.JSON(http.StatusOK, field.NewFieldState(name))
}

func (h *FieldHandler) Create(c *gin.Context) {
	var f field.Field
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.modelService.AddField(c.Request.Context(), c.Param("modelId"), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, added)
}

func (h *FieldHandler) List(c *gin.Context) {
	fields, err := h.modelService.ListFields(c.Request.Context(), c.Param("modelId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fields": fields, "total": len(fields)})
}

func (h *FieldHandler) Get(c *gin.Context) {
	f, err := h.modelService.GetField(c.Request.Context(), c.Param("modelId"), c.Param("fieldId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, f)
}

func (h *FieldHandler) Update(c *gin.Context) {
	data, ifUpdatedAt, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.modelService.UpdateField(c.Request.Context(), c.Param("modelId"), c.Param("fieldId"), data, ifUpdatedAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, f)
}

func (h *FieldHandler) Delete(c *gin.Context) {
	if err := h.modelService.DeleteField(c.Request.Context(), c.Param("modelId"), c.Param("fieldId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Operators lists the filter operators offered for a field id or createdAt.
func (h *FieldHandler) Operators(c *gin.Context) {
	ref := c.Param("ref")

	var f *field.Field
	if ref != model.CreatedAt {
		found, err := h.modelService.GetField(c.Request.Context(), c.Param("modelId"), ref)
		if err != nil {
			respondError(c, err)
			return
		}
		f = found
	} else if _, err := h.modelService.Get(c.Request.Context(), c.Param("modelId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"field": ref, "operators": query.OperatorsFor(ref, f)})
}
