// Package config provides centralized configuration management for the cleaner.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	CRM      CRMConfig
	Catalog  CatalogConfig
	Cleaning CleaningConfig
	Report   ReportConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// CRMConfig holds the CRM pipeline file locations.
type CRMConfig struct {
	// Input is the raw client file (default: data/raw/clients.csv)
	Input string `env:"CRM_INPUT" default:"data/raw/clients.csv"`

	// Output is the cleaned client file (default: data/clean/clients_clean.csv)
	Output string `env:"CRM_OUTPUT" default:"data/clean/clients_clean.csv"`

	// Report is the before/after KPI table (default: data/reports/kpi_qualite_crm.csv)
	Report string `env:"CRM_REPORT" default:"data/reports/kpi_qualite_crm.csv"`

	// HTMLReport is the rendered KPI page; set it empty to skip rendering
	HTMLReport string `env:"CRM_HTML_REPORT" default:"data/reports/kpi_qualite_crm.html"`
}

// CatalogConfig holds the catalog pipeline file locations.
type CatalogConfig struct {
	FRInput      string `env:"CATALOG_FR_INPUT" default:"data/raw/catalog_fr.csv"`
	USInput      string `env:"CATALOG_US_INPUT" default:"data/raw/catalog_us.csv"`
	MappingInput string `env:"CATALOG_MAPPING_INPUT" default:"data/raw/mapping_categories.csv"`
	Output       string `env:"CATALOG_OUTPUT" default:"data/clean/catalog_canonique.csv"`
	Report       string `env:"CATALOG_REPORT" default:"data/clean/kpi_catalog.csv"`
}

// CleaningConfig holds the normalisation and deduplication settings.
type CleaningConfig struct {
	// Pipelines lists the pipelines run when none are named on the command line
	Pipelines []string `env:"CLEAN_PIPELINES" default:"crm,catalog"`

	// DayFirst reads ambiguous dates such as 01/02/1990 as 1 February (default: true)
	DayFirst bool `env:"CLEAN_DAY_FIRST" default:"true"`

	// BirthMinAge and BirthMaxAge bound a valid birthdate, in years (default: 0-120)
	BirthMinAge int `env:"CLEAN_BIRTH_MIN_AGE" default:"0"`
	BirthMaxAge int `env:"CLEAN_BIRTH_MAX_AGE" default:"120"`

	// DedupPolicy picks the surviving CRM duplicate: most_complete, first or last
	DedupPolicy string `env:"CLEAN_DEDUP_POLICY" default:"most_complete"`

	// Timeout bounds a whole run; 0 disables it (default: 0s)
	Timeout time.Duration `env:"CLEAN_TIMEOUT" default:"0s"`
}

// ReportConfig holds console report settings.
type ReportConfig struct {
	// Console prints the quality reports to stdout (default: true)
	Console bool `env:"REPORT_CONSOLE" default:"true"`

	// WarnThreshold is the column completeness, in percent, below which a
	// column is reported bad rather than warning (default: 80)
	WarnThreshold float64 `env:"REPORT_WARN_THRESHOLD" default:"80"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File receives a copy of every log line when set
	File string `env:"LOG_FILE"`
}

// MetricsConfig holds run metrics settings.
type MetricsConfig struct {
	// Textfile is where run metrics are written in the Prometheus text
	// format; set it empty to skip (default: data/reports/pipeline.prom)
	Textfile string `env:"METRICS_TEXTFILE" default:"data/reports/pipeline.prom"`
}
