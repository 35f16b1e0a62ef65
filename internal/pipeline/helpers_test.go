package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/datacleaner/internal/config"
	"github.com/JonMunkholm/datacleaner/internal/metrics"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv returns an environment whose paths all live under a temp dir.
func testEnv(t *testing.T) (*Env, string) {
	t.Helper()
	dir := t.TempDir()
	path := func(p ...string) string { return filepath.Join(append([]string{dir}, p...)...) }

	cfg := &config.Config{
		CRM: config.CRMConfig{
			Input:      path("raw", "clients.csv"),
			Output:     path("clean", "clients_clean.csv"),
			Report:     path("reports", "kpi_qualite_crm.csv"),
			HTMLReport: path("reports", "kpi_qualite_crm.html"),
		},
		Catalog: config.CatalogConfig{
			FRInput:      path("raw", "catalog_fr.csv"),
			USInput:      path("raw", "catalog_us.csv"),
			MappingInput: path("raw", "mapping_categories.csv"),
			Output:       path("clean", "catalog_canonique.csv"),
			Report:       path("clean", "kpi_catalog.csv"),
		},
		Cleaning: config.CleaningConfig{
			Pipelines:   []string{"crm", "catalog"},
			DayFirst:    true,
			BirthMinAge: 0,
			BirthMaxAge: 120,
			DedupPolicy: "most_complete",
		},
		Report:  config.ReportConfig{WarnThreshold: 80},
		Logging: config.LoggingConfig{Level: "info", Format: "text"},
	}

	return &Env{
		Config:  cfg,
		Metrics: metrics.New(),
		Now:     func() time.Time { return testNow },
	}, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
