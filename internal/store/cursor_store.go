package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feral-file/ff-lifecycle-bridge/internal/store/schema"
)

func cursorKey(name string) string {
	return fmt.Sprintf("cursor:%s", name)
}

// GetCursor retrieves a named cursor
func (s *pgStore) GetCursor(ctx context.Context, name string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", cursorKey(name)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil // Return empty if no cursor exists
		}
		return "", fmt.Errorf("failed to get cursor: %w", err)
	}

	return kv.Value, nil
}

// SetCursor stores a named cursor
func (s *pgStore) SetCursor(ctx context.Context, name, value string) error {
	kv := schema.KeyValueStore{
		Key:   cursorKey(name),
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set cursor: %w", err)
	}

	return nil
}
