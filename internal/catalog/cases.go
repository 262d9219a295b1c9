package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

// CaseCatalog is the read-only case/item lookup loaded at startup.
// It is safe for concurrent use after construction.
type CaseCatalog struct {
	cases map[string]domain.Case
}

type caseFile struct {
	Cases []domain.Case `json:"cases"`
}

// NewCaseCatalog loads and validates the case catalog from a JSON file.
// Structural problems (empty item lists, negative values, duplicate ids)
// fail loading with ErrInvalidState rather than surfacing later at draw time.
func NewCaseCatalog(path string) (*CaseCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case catalog %s: %w", path, err)
	}
	return ParseCaseCatalog(data)
}

// ParseCaseCatalog builds a catalog from raw JSON bytes.
func ParseCaseCatalog(data []byte) (*CaseCatalog, error) {
	var file caseFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse case catalog: %w", err)
	}

	cases := make(map[string]domain.Case, len(file.Cases))
	for _, c := range file.Cases {
		if err := validateCase(c); err != nil {
			return nil, err
		}
		if _, exists := cases[c.ID]; exists {
			return nil, fmt.Errorf("%s %q: %w", ErrMsgCaseDuplicateID, c.ID, domain.ErrInvalidState)
		}
		cases[c.ID] = c
	}

	slog.Info(LogMsgCasesLoaded, "count", len(cases))
	return &CaseCatalog{cases: cases}, nil
}

func validateCase(c domain.Case) error {
	if len(c.Items) == 0 {
		return fmt.Errorf("%s: case %q: %w", ErrMsgCaseEmptyItems, c.ID, domain.ErrInvalidState)
	}
	if c.Price < 0 {
		return fmt.Errorf("case %q has negative price: %w", c.ID, domain.ErrInvalidState)
	}
	for _, item := range c.Items {
		if item.Value < 0 {
			return fmt.Errorf("%s: case %q item %q: %w", ErrMsgCaseNegativeValue, c.ID, item.Type, domain.ErrInvalidState)
		}
	}
	return nil
}

// GetCase returns a case by id, or ErrCaseNotFound.
func (cc *CaseCatalog) GetCase(caseID string) (domain.Case, error) {
	c, ok := cc.cases[caseID]
	if !ok {
		return domain.Case{}, fmt.Errorf("%w: %s", domain.ErrCaseNotFound, caseID)
	}
	return c, nil
}

// CaseIDs returns every known case id.
func (cc *CaseCatalog) CaseIDs() []string {
	ids := make([]string, 0, len(cc.cases))
	for id := range cc.cases {
		ids = append(ids, id)
	}
	return ids
}
