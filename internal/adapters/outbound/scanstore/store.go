package scanstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/debloat-dev/debloat/internal/domain"
)

// FileStore implements domain.ScanStore with a JSON artifact, the handoff
// between `debloat scan --out` and `debloat remediate --from-scan`.
type FileStore struct{}

func New() *FileStore {
	return &FileStore{}
}

type document struct {
	SavedAt  time.Time        `json:"saved_at"`
	Findings []domain.Finding `json:"findings"`
}

func (s *FileStore) Save(path string, findings []domain.Finding) error {
	doc := document{SavedAt: time.Now(), Findings: findings}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (s *FileStore) Load(path string) ([]domain.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scan file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scan file %s: %w", path, err)
	}
	return doc.Findings, nil
}
