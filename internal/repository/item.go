package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"alkoteka/parser/internal/domain"
)

type ItemRepository interface {
	SaveItems(ctx context.Context, items []domain.Item) error
}

// fileItemRepository stores a run's items as one indented JSON array,
// replacing whatever the file held before.
type fileItemRepository struct {
	path string
}

func NewFileItemRepository(path string) ItemRepository {
	return &fileItemRepository{
		path: path,
	}
}

func (r *fileItemRepository) SaveItems(ctx context.Context, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if items == nil {
		items = []domain.Item{}
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".items-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	encoder := json.NewEncoder(tmp)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")

	if err := encoder.Encode(items); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode items: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}

	return nil
}
