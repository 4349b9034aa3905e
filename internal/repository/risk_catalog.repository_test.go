package repository

import (
	"os"
	"path/filepath"
	"riskmodel/internal/domain"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRiskCatalogRepository_Load(t *testing.T) {
	repo := NewRiskCatalogRepository()

	t.Run("happy path", func(t *testing.T) {
		in := "Category,Description,Probability,Impact\n" +
			"Credit,Counterparty default,3,5\n" +
			"Market,FX volatility,four,2\n"

		records, err := repo.Load(strings.NewReader(in))
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.RiskRecord{
					{Category: "Credit", Description: "Counterparty default", Probability: "3", Impact: "5"},
					{Category: "Market", Description: "FX volatility", Probability: "four", Impact: "2"},
				},
				records,
			),
		)
	})

	t.Run("extra columns and byte order mark", func(t *testing.T) {
		in := "\xef\xbb\xbfID,Category,Description,Probability,Impact,Owner\n" +
			"1,Ops,Outage,2,4,alice\n"

		records, err := repo.Load(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "Ops", records[0].Category)
		require.Equal(t, "4", records[0].Impact)
	})

	t.Run("empty input", func(t *testing.T) {
		records, err := repo.Load(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := repo.Load(strings.NewReader("Category,Description,Probability,Impact\n"))
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("missing columns", func(t *testing.T) {
		_, err := repo.Load(strings.NewReader("Category,Description\nCredit,Default\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "Probability, Impact")
	})
}

func TestRiskCatalogRepository_LoadFile(t *testing.T) {
	repo := NewRiskCatalogRepository()

	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "risks.csv")
		err := os.WriteFile(path, []byte("Category,Description,Probability,Impact\nCredit,Default,1,1\n"), 0o644)
		require.NoError(t, err)

		records, err := repo.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := repo.LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
