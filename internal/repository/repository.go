package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gotera/internal/graphql"
)

// ErrNotFound is returned when a get-one operation answers with null.
var ErrNotFound = errors.New("not found")

// Executor sends one GraphQL operation. *graphql.Client satisfies it.
type Executor interface {
	Do(ctx context.Context, op graphql.Operation, vars map[string]any, out any) error
}

// Payload converts an input struct into a variables object, dropping empty
// optional fields: empty or whitespace-only strings, nulls, and empty lists.
// Strings are trimmed.
func Payload(input any) (map[string]any, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	cleaned := make(map[string]any, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			cleaned[key] = v
		case []any:
			if len(v) == 0 {
				continue
			}
			cleaned[key] = v
		default:
			cleaned[key] = v
		}
	}
	return cleaned, nil
}

func withInput(input any, extra map[string]any) (map[string]any, error) {
	payload, err := Payload(input)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{"input": payload}
	for k, v := range extra {
		vars[k] = v
	}
	return vars, nil
}
