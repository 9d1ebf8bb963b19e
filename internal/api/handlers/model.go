package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/baseplate/cms/internal/core/model"
)

type ModelHandler struct {
	modelService *model.Service
}

func NewModelHandler(modelService *model.Service) *ModelHandler {
	return &ModelHandler{modelService: modelService}
}

func (h *ModelHandler) Create(c *gin.Context) {
	var req model.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.modelService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *ModelHandler) List(c *gin.Context) {
	resp, err := h.modelService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ModelHandler) Get(c *gin.Context) {
	m, err := h.modelService.Get(c.Request.Context(), c.Param("modelId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *ModelHandler) Update(c *gin.Context) {
	data, ifUpdatedAt, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch model.ModelPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.modelService.Update(c.Request.Context(), c.Param("modelId"), &patch, ifUpdatedAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *ModelHandler) Delete(c *gin.Context) {
	if err := h.modelService.Delete(c.Request.Context(), c.Param("modelId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
