package graph

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// NodePayload is the wire shape of one node as served by the backend
type NodePayload struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Categories    []string `json:"categories" validate:"omitempty,dive,min=1"`
	ConnCount     int      `json:"connection_count" validate:"gte=0"`
	IsBillionaire bool     `json:"is_billionaire"`
}

// EdgePayload is the wire shape of one edge as served by the backend.
// Edges are validated individually during dataset build, not here: one
// bad edge record is dropped, it must never fail the whole load.
type EdgePayload struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Weight   int      `json:"weight"`
	Contexts []string `json:"contexts"`
}

// Payload is the full dataset document fetched once per view activation
type Payload struct {
	Nodes []NodePayload `json:"nodes" validate:"required,dive"`
	Edges []EdgePayload `json:"edges"`
}

var validate = validator.New()

// DecodePayload parses and validates a raw dataset document
func DecodePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding dataset payload: %w", err)
	}
	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("invalid dataset payload: %w", err)
	}
	return &p, nil
}
