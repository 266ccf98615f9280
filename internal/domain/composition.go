package domain

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/shopspring/decimal"
)

// Component is one material entry of a composition
type Component struct {
	Name   string          `json:"name" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Unit   string          `json:"unit" validate:"required"`
}

// Composition is the ordered material list stored on the ledger as a transport string
type Composition []Component

// EncodeComposition encodes the composition into its ledger transport string (RFC 8785 canonical JSON)
func EncodeComposition(c Composition) (string, error) {
	if c == nil {
		c = Composition{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal composition: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize composition: %w", err)
	}
	return string(canonical), nil
}

// DecodeComposition decodes a ledger transport string back into a composition
func DecodeComposition(s string) (Composition, error) {
	if s == "" {
		return Composition{}, nil
	}
	var c Composition
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal composition: %w", err)
	}
	return c, nil
}
