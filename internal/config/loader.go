package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// A variable set to the empty string counts as set, so optional outputs
// can be switched off with NAME=.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		required := field.Tag.Get("required") == "true"

		value, ok := os.LookupEnv(envName)
		if !ok {
			if alt := field.Tag.Get("envAlt"); alt != "" {
				value, ok = os.LookupEnv(alt)
			}
		}
		if !ok {
			value = field.Tag.Get("default")
		}

		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			fieldVal.Set(reflect.Zero(field.Type))
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		// Split comma-separated values, trim whitespace
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		field.Set(reflect.ValueOf(result))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Paths
	required := []struct{ name, value string }{
		{"CRM_INPUT", c.CRM.Input},
		{"CRM_OUTPUT", c.CRM.Output},
		{"CRM_REPORT", c.CRM.Report},
		{"CATALOG_FR_INPUT", c.Catalog.FRInput},
		{"CATALOG_US_INPUT", c.Catalog.USInput},
		{"CATALOG_MAPPING_INPUT", c.Catalog.MappingInput},
		{"CATALOG_OUTPUT", c.Catalog.Output},
		{"CATALOG_REPORT", c.Catalog.Report},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, r.name+" must not be empty")
		}
	}

	// Cleaning validation
	if len(c.Cleaning.Pipelines) == 0 {
		errs = append(errs, "CLEAN_PIPELINES must name at least one pipeline")
	}
	if c.Cleaning.BirthMinAge < 0 {
		errs = append(errs, "CLEAN_BIRTH_MIN_AGE must be non-negative")
	}
	if c.Cleaning.BirthMaxAge < c.Cleaning.BirthMinAge {
		errs = append(errs, fmt.Sprintf("CLEAN_BIRTH_MAX_AGE (%d) must be >= CLEAN_BIRTH_MIN_AGE (%d)",
			c.Cleaning.BirthMaxAge, c.Cleaning.BirthMinAge))
	}
	if _, err := core.ParseKeepPolicy(c.Cleaning.DedupPolicy); err != nil {
		errs = append(errs, fmt.Sprintf("CLEAN_DEDUP_POLICY (%q) must be one of: most_complete, first, last",
			c.Cleaning.DedupPolicy))
	}
	if c.Cleaning.Timeout < 0 {
		errs = append(errs, "CLEAN_TIMEOUT must be non-negative")
	}

	// Report validation
	if c.Report.WarnThreshold < 0 || c.Report.WarnThreshold > 100 {
		errs = append(errs, fmt.Sprintf("REPORT_WARN_THRESHOLD (%g) must be 0-100", c.Report.WarnThreshold))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// KeepPolicy returns the configured deduplication policy.
// Validate guarantees it parses.
func (c *CleaningConfig) KeepPolicy() core.KeepPolicy {
	p, err := core.ParseKeepPolicy(c.DedupPolicy)
	if err != nil {
		return core.KeepMostComplete
	}
	return p
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("CRM: {Input: %q, Output: %q}, ", c.CRM.Input, c.CRM.Output))
	b.WriteString(fmt.Sprintf("Catalog: {FR: %q, US: %q, Mapping: %q, Output: %q}, ",
		c.Catalog.FRInput, c.Catalog.USInput, c.Catalog.MappingInput, c.Catalog.Output))
	b.WriteString(fmt.Sprintf("Cleaning: {Pipelines: %v, DayFirst: %v, Ages: %d-%d, Policy: %q}, ",
		c.Cleaning.Pipelines, c.Cleaning.DayFirst, c.Cleaning.BirthMinAge, c.Cleaning.BirthMaxAge, c.Cleaning.DedupPolicy))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
