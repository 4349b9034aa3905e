package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"riskmodel/internal/domain"
	"strings"

	"github.com/gocarina/gocsv"
)

var utf8BOM = []byte("\xef\xbb\xbf")

var requiredCatalogColumns = []string{"Category", "Description", "Probability", "Impact"}

type RiskCatalogRepository interface {
	Load(r io.Reader) ([]domain.RiskRecord, error)
	LoadFile(path string) ([]domain.RiskRecord, error)
}

type riskCatalogRepositoryHandler struct{}

func NewRiskCatalogRepository() RiskCatalogRepository {
	return riskCatalogRepositoryHandler{}
}

func (h riskCatalogRepositoryHandler) LoadFile(path string) ([]domain.RiskRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open risk catalog %s: %w", path, err)
	}
	defer f.Close()

	records, err := h.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load risk catalog %s: %w", path, err)
	}
	return records, nil
}

// Load decodes a catalog CSV. A completely empty input is an empty
// catalog; a header without one of the required columns is an error.
func (h riskCatalogRepositoryHandler) Load(r io.Reader) ([]domain.RiskRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.RiskRecord{}, nil
	}

	if err := checkCatalogHeader(raw); err != nil {
		return nil, err
	}

	records := []domain.RiskRecord{}
	if err := gocsv.UnmarshalBytes(raw, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []domain.RiskRecord{}, nil
		}
		return nil, fmt.Errorf("failed to decode catalog csv: %w", err)
	}

	return records, nil
}

func checkCatalogHeader(raw []byte) error {
	header, err := csv.NewReader(bytes.NewReader(raw)).Read()
	if err != nil {
		return fmt.Errorf("failed to read catalog header: %w", err)
	}

	present := map[string]bool{}
	for _, col := range header {
		present[col] = true
	}

	missing := []string{}
	for _, col := range requiredCatalogColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("catalog is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
