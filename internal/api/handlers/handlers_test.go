package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/query"
	"github.com/baseplate/cms/internal/core/validation"
	"github.com/baseplate/cms/internal/storage/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter() *gin.Engine {
	modelService := model.NewService(memory.NewRepository(), validation.NewValidator(), uuid.Nil)
	queryService := query.NewService(modelService)

	models := NewModelHandler(modelService)
	fields := NewFieldHandler(modelService)
	entries := NewEntryHandler(modelService, queryService)

	r := gin.New()
	r.GET("/field-types", fields.Types)
	r.GET("/field-types/:type", fields.NewState)
	r.POST("/models", models.Create)
	r.GET("/models", models.List)
	r.GET("/models/:modelId", models.Get)
	r.PUT("/models/:modelId", models.Update)
	r.DELETE("/models/:modelId", models.Delete)
	r.POST("/models/:modelId/fields", fields.Create)
	r.GET("/models/:modelId/fields", fields.List)
	r.PUT("/models/:modelId/fields/:fieldId", fields.Update)
	r.DELETE("/models/:modelId/fields/:fieldId", fields.Delete)
	r.GET("/models/:modelId/operators/:ref", fields.Operators)
	r.POST("/models/:modelId/entries", entries.Create)
	r.GET("/models/:modelId/entries", entries.List)
	r.POST("/models/:modelId/entries/query", entries.Query)
	r.GET("/models/:modelId/entries/:entryId", entries.Get)
	r.PUT("/models/:modelId/entries/:entryId", entries.Update)
	r.DELETE("/models/:modelId/entries/:entryId", entries.Delete)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

const staleStamp = "2000-01-01T00:00:00.000Z"

// record is the subset of model, field and entry payloads the tests read.
type record struct {
	ID        string `json:"id"`
	UpdatedAt string `json:"updatedAt"`
}

func create(t *testing.T, r *gin.Engine, path string, body any) record {
	t.Helper()
	w := do(t, r, http.MethodPost, path, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d: %s", path, w.Code, w.Body.String())
	}
	var rec record
	decode(t, w, &rec)
	return rec
}

func TestModelLifecycle(t *testing.T) {
	r := setupRouter()

	if w := do(t, r, http.MethodPost, "/models", gin.H{}); w.Code != http.StatusBadRequest {
		t.Errorf("missing name: expected 400, got %d", w.Code)
	}

	m := create(t, r, "/models", gin.H{"name": "Tasks"})

	w := do(t, r, http.MethodGet, "/models", nil)
	var list model.ListModelsResponse
	decode(t, w, &list)
	if list.Total != 1 || list.Models[0].ID != m.ID {
		t.Errorf("list = %+v", list)
	}

	w = do(t, r, http.MethodPut, "/models/"+m.ID, gin.H{"name": "Todos", "updatedAt": m.UpdatedAt})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPut, "/models/"+m.ID, gin.H{"name": "Stale"}, "If-Match", staleStamp)
	if w.Code != http.StatusConflict {
		t.Errorf("stale update: expected 409, got %d", w.Code)
	}

	if w := do(t, r, http.MethodDelete, "/models/"+m.ID, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/models/"+m.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("get deleted: expected 404, got %d", w.Code)
	}
}

func TestFieldTypes(t *testing.T) {
	r := setupRouter()

	w := do(t, r, http.MethodGet, "/field-types/boolean", nil)
	var state map[string]any
	decode(t, w, &state)
	if state["type"] != "boolean" || state["trueLabel"] != "True" {
		t.Errorf("boolean state = %v", state)
	}

	w = do(t, r, http.MethodGet, "/field-types/range", nil)
	decode(t, w, &state)
	if state["option"] != "range" {
		t.Errorf("range state = %v", state)
	}

	w = do(t, r, http.MethodGet, "/field-types", nil)
	var catalog struct {
		Types []struct {
			Type string `json:"type"`
		} `json:"types"`
	}
	decode(t, w, &catalog)
	if len(catalog.Types) != 5 {
		t.Errorf("types = %+v", catalog.Types)
	}
}

func TestEntriesAndQuery(t *testing.T) {
	r := setupRouter()
	m := create(t, r, "/models", gin.H{"name": "Tasks"})
	base := "/models/" + m.ID

	priority := create(t, r, base+"/fields", gin.H{"type": "number", "name": "Priority"})
	status := create(t, r, base+"/fields", gin.H{"type": "select", "name": "Status", "required": true, "options": "open, closed"})

	if w := do(t, r, http.MethodPost, base+"/fields", gin.H{"type": "number", "name": "Bad", "option": "slider"}); w.Code != http.StatusBadRequest {
		t.Errorf("illegal option: expected 400, got %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, base+"/fields", gin.H{"id": model.CreatedAt, "type": "text", "name": "Shadow"}); w.Code != http.StatusBadRequest {
		t.Errorf("reserved id: expected 400, got %d", w.Code)
	}

	low := create(t, r, base+"/entries", gin.H{"values": gin.H{priority.ID: "3", status.ID: "open"}})
	create(t, r, base+"/entries", gin.H{"values": gin.H{priority.ID: 7, status.ID: "closed"}})

	w := do(t, r, http.MethodPost, base+"/entries", gin.H{"values": gin.H{priority.ID: 1}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing required status: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, base+"/entries/query", gin.H{
		"filter": []any{priority.ID, "greater than", 2},
		"sort":   priority.ID,
		"order":  "asc",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("query: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp query.Response
	decode(t, w, &resp)
	if resp.Total != 2 || resp.Entries[0].ID != low.ID {
		t.Errorf("query = %+v", resp)
	}

	w = do(t, r, http.MethodPost, base+"/entries/query", gin.H{"filter": []any{status.ID, "equals", "closed"}})
	decode(t, w, &resp)
	if resp.Total != 1 {
		t.Errorf("status filter total = %d", resp.Total)
	}

	w = do(t, r, http.MethodPost, base+"/entries/query", nil)
	decode(t, w, &resp)
	if resp.Total != 2 || resp.Sort != model.CreatedAt || resp.Order != model.Desc {
		t.Errorf("empty query = %+v", resp)
	}

	w = do(t, r, http.MethodPut, base+"/entries/"+low.ID, gin.H{"values": gin.H{priority.ID: "9"}, "updatedAt": low.UpdatedAt})
	if w.Code != http.StatusOK {
		t.Fatalf("update entry: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPut, base+"/entries/"+low.ID, gin.H{"values": gin.H{priority.ID: 4}, "updatedAt": staleStamp})
	if w.Code != http.StatusConflict {
		t.Errorf("stale entry update: expected 409, got %d", w.Code)
	}

	w = do(t, r, http.MethodGet, base+"/entries/"+low.ID, nil)
	var detail struct {
		Display map[string]string `json:"display"`
	}
	decode(t, w, &detail)
	if detail.Display[priority.ID] != "9" {
		t.Errorf("display = %v", detail.Display)
	}

	if w := do(t, r, http.MethodDelete, base+"/entries/"+low.ID, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete entry: expected 204, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, base+"/entries/"+low.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("get deleted entry: expected 404, got %d", w.Code)
	}
}

func TestOperators(t *testing.T) {
	r := setupRouter()
	m := create(t, r, "/models", gin.H{"name": "Events"})
	base := "/models/" + m.ID
	size := create(t, r, base+"/fields", gin.H{"type": "number", "name": "Size"})

	tests := []struct {
		ref  string
		want []query.Operator
	}{
		{model.CreatedAt, []query.Operator{query.Equals, query.NotEqual, query.IsBefore, query.IsAfter}},
		{size.ID, []query.Operator{query.Equals, query.NotEqual, query.GreaterThan, query.LessThan}},
	}
	for _, tt := range tests {
		w := do(t, r, http.MethodGet, base+"/operators/"+tt.ref, nil)
		var resp struct {
			Operators []query.Operator `json:"operators"`
		}
		decode(t, w, &resp)
		if len(resp.Operators) != len(tt.want) || resp.Operators[2] != tt.want[2] {
			t.Errorf("%s operators = %v, want %v", tt.ref, resp.Operators, tt.want)
		}
	}

	if w := do(t, r, http.MethodGet, base+"/operators/missing", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown field: expected 404, got %d", w.Code)
	}
}

func TestFieldUpdateAndDelete(t *testing.T) {
	r := setupRouter()
	m := create(t, r, "/models", gin.H{"name": "Tasks"})
	base := "/models/" + m.ID
	f := create(t, r, base+"/fields", gin.H{"type": "text", "name": "Title"})

	w := do(t, r, http.MethodPut, base+"/fields/"+f.ID, gin.H{"type": "boolean", "trueLabel": "Yes"})
	if w.Code != http.StatusOK {
		t.Fatalf("update field: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated map[string]any
	decode(t, w, &updated)
	if updated["type"] != "boolean" || updated["name"] != "Title" || updated["trueLabel"] != "Yes" {
		t.Errorf("updated field = %v", updated)
	}

	if w := do(t, r, http.MethodDelete, base+"/fields/"+f.ID, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete field: expected 204, got %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, base+"/fields/"+f.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("delete twice: expected 404, got %d", w.Code)
	}
}
