package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/query"
)

type EntryHandler struct {
	modelService *model.Service
	queryService *query.Service
}

func NewEntryHandler(modelService *model.Service, queryService *query.Service) *EntryHandler {
	return &EntryHandler{modelService: modelService, queryService: queryService}
}

func (h *EntryHandler) Create(c *gin.Context) {
	var req model.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.modelService.AddEntry(c.Request.Context(), c.Param("modelId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

func (h *EntryHandler) List(c *gin.Context) {
	entries, err := h.modelService.ListEntries(c.Request.Context(), c.Param("modelId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}

// Get returns the entry along with its label and rendered field values.
func (h *EntryHandler) Get(c *gin.Context) {
	m, err := h.modelService.Get(c.Request.Context(), c.Param("modelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	e, ok := m.Entries[c.Param("entryId")]
	if !ok {
		respondError(c, model.ErrEntryNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":   e,
		"label":   model.EntryLabel(*m, e),
		"display": model.DisplayValues(*m, e),
	})
}

func (h *EntryHandler) Update(c *gin.Context) {
	data, ifUpdatedAt, err := readBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var patch model.EntryPatch
	if err := json.Unmarshal(data, &patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.modelService.UpdateEntry(c.Request.Context(), c.Param("modelId"), c.Param("entryId"), &patch, ifUpdatedAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.modelService.DeleteEntry(c.Request.Context(), c.Param("modelId"), c.Param("entryId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Query filters and sorts the model's entries. An empty body lists them
// in the model's saved order.
func (h *EntryHandler) Query(c *gin.Context) {
	var req query.Request
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	resp, err := h.queryService.Run(c.Request.Context(), c.Param("modelId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
