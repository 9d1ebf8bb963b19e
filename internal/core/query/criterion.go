package query

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/baseplate/cms/internal/core/value"
)

type Operator string

const (
	Equals      Operator = "equals"
	NotEqual    Operator = "not equal"
	Includes    Operator = "includes"
	NotIncluded Operator = "not included"
	GreaterThan Operator = "greater than"
	LessThan    Operator = "less than"
	IsBefore    Operator = "is before"
	IsAfter     Operator = "is after"
)

// Criterion is one filter condition: the field (or createdAt) to read, the
// operator, and the operand to compare against.
type Criterion struct {
	Field    string
	Operator Operator
	Operand  value.Value
}

// IsZero reports whether c selects no field, in which case every entry
// passes.
func (c Criterion) IsZero() bool {
	return c.Field == ""
}

// MarshalJSON writes the criterion as a [field, operator, operand] triple.
// The zero criterion is written as an empty array.
func (c Criterion) MarshalJSON() ([]byte, error) {
	if c.IsZero() && c.Operator == "" && c.Operand.IsAbsent() {
		return []byte("[]"), nil
	}
	return json.Marshal([]any{c.Field, c.Operator, c.Operand})
}

// UnmarshalJSON accepts a [field, operator, operand] triple, possibly
// shorter, or an object with field, operator and value keys.
func (c *Criterion) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Criterion{}

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '[':
		var parts []json.RawMessage
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		if len(parts) > 3 {
			return fmt.Errorf("criterion has %d parts, want at most 3", len(parts))
		}
		if len(parts) > 0 {
			if err := json.Unmarshal(parts[0], &c.Field); err != nil {
				return fmt.Errorf("criterion field: %w", err)
			}
		}
		if len(parts) > 1 {
			if err := json.Unmarshal(parts[1], &c.Operator); err != nil {
				return fmt.Errorf("criterion operator: %w", err)
			}
		}
		if len(parts) > 2 {
			return json.Unmarshal(parts[2], &c.Operand)
		}
		return nil
	default:
		var obj struct {
			Field    string      `json:"field"`
			Operator Operator    `json:"operator"`
			Value    value.Value `json:"value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.Field, c.Operator, c.Operand = obj.Field, obj.Operator, obj.Value
		return nil
	}
}
