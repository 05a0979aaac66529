package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ashureev/onboard-assistant/internal/domain"
)

// DefaultPath is where the extractor writes and the server reads the knowledge base.
const DefaultPath = "knowledge.json"

// Base is the knowledge loaded at startup. It is read-only after Load.
type Base struct {
	records []domain.KnowledgeRecord
}

// NewBase wraps records in a Base.
func NewBase(records ...domain.KnowledgeRecord) *Base {
	return &Base{records: records}
}

// Records returns the loaded records. Callers must not modify them.
func (b *Base) Records() []domain.KnowledgeRecord {
	if b == nil {
		return nil
	}
	return b.records
}

// Len returns the number of loaded records.
func (b *Base) Len() int {
	return len(b.Records())
}

// Load reads a knowledge file holding either one record object or an array of them.
// A missing file yields an empty Base together with an error wrapping ErrNotFound.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBase(), fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("decode knowledge file %s: %w", path, err)
	}
	return NewBase(records...), nil
}

func decodeRecords(data []byte) ([]domain.KnowledgeRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []domain.KnowledgeRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var record domain.KnowledgeRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, err
	}
	return []domain.KnowledgeRecord{record}, nil
}

// Save writes record to path as indented JSON, creating parent directories.
func Save(path string, record domain.KnowledgeRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create knowledge directory: %w", err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("encode knowledge record: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write knowledge file: %w", err)
	}
	return nil
}
