package service

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"finbook/internal/core"
)

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

type ExportFormat string

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Export serializes the full record store as a self-contained blob.
// JSON is the canonical form and stays importable by anything that
// speaks the snapshot; YAML is offered for readability.
func (s *Book) Export(format ExportFormat) ([]byte, error) {
	snapshot := s.Snapshot()
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("encode yaml export: %w", err)
		}
		return data, nil
	default:
		return snapshot.Encode()
	}
}

// Import replaces the entire record store with the supplied blob,
// merged over defaults like any load. All-or-nothing: a parse failure
// returns an error and leaves the current state untouched.
func (s *Book) Import(data []byte, format ExportFormat) error {
	var book *core.Book
	switch format {
	case FormatYAML:
		book = core.NewBook()
		if err := yaml.Unmarshal(data, book); err != nil {
			return fmt.Errorf("decode yaml import: %w", err)
		}
	default:
		var err error
		book, err = core.DecodeBook(data)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.book = book
	s.changed()
	s.mu.Unlock()
	s.logger.Info("Imported snapshot",
		"assets", len(book.Assets),
		"cards", len(book.CreditCards),
		"liabilities", len(book.Liabilities),
		"transactions", len(book.Transactions))
	return nil
}
