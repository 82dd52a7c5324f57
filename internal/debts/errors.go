package debts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidFilter    = errors.New("opção inválida")
	ErrMalformedPayload = errors.New("malformed upstream payload")
)

// GatewayError wraps any failure reported while querying the upstream API.
// The underlying cause stays opaque to the pipeline.
type GatewayError struct {
	Query Query
	Err   error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Query, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// ValidationError holds the per-field messages of one record that failed
// validation.
type ValidationError struct {
	Type   Kind                `json:"type"`
	Index  int                 `json:"index"`
	Fields map[string][]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return fmt.Sprintf("entity validation error: %s[%d]: %s", e.Type, e.Index, strings.Join(parts, "; "))
}

// ValidationErrors collects every invalid record of a search.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f fieldErrors) toError(kind Kind) error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Type: kind, Fields: f}
}
