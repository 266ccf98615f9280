package adapter

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// JSON encodes lifecycle and orphan events for publishing
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
}

type canonicalJSON struct{}

// NewJSON returns an encoder emitting RFC 8785 canonical JSON, so one event
// always publishes the same bytes
func NewJSON() JSON {
	return canonicalJSON{}
}

func (canonicalJSON) Marshal(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(raw)
}
