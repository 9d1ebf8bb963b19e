package query

import (
	"context"

	"github.com/baseplate/cms/internal/core/model"
)

// Request selects and orders a model's entries. Empty Sort and Order fall
// back to the model's saved choice and then to newest first.
type Request struct {
	Filter Criterion   `json:"filter"`
	Sort   string      `json:"sort"`
	Order  model.Order `json:"order"`
}

type LabeledEntry struct {
	model.Entry
	Label string `json:"label"`
}

type Response struct {
	Entries []LabeledEntry `json:"entries"`
	Total   int            `json:"total"`
	Sort    string         `json:"sort"`
	Order   model.Order    `json:"order"`
}

// ModelSource loads the model a query runs against.
type ModelSource interface {
	Get(ctx context.Context, id string) (*model.Model, error)
}

type Service struct {
	models ModelSource
}

func NewService(models ModelSource) *Service {
	return &Service{models: models}
}

func (s *Service) Run(ctx context.Context, modelID string, req *Request) (*Response, error) {
	m, err := s.models.Get(ctx, modelID)
	if err != nil {
		return nil, err
	}
	return Run(*m, req), nil
}

// Run filters then sorts the model's entries and labels each result.
func Run(m model.Model, req *Request) *Response {
	by := req.Sort
	if by == "" {
		by = m.Sort
	}
	if _, ok := m.Fields[by]; !ok {
		by = model.CreatedAt
	}

	order := req.Order
	if order == "" {
		order = m.Order
	}
	order = model.ParseOrder(string(order))

	entries := Filter(m.EntryList(), req.Filter, m.Fields)
	entries = Sort(entries, by, order, m.Fields)

	out := make([]LabeledEntry, len(entries))
	for i, e := range entries {
		out[i] = LabeledEntry{Entry: e, Label: model.EntryLabel(m, e)}
	}

	return &Response{
		Entries: out,
		Total:   len(out),
		Sort:    by,
		Order:   order,
	}
}
