package pipeline

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/csv"
	"github.com/JonMunkholm/datacleaner/internal/logging"
	"github.com/JonMunkholm/datacleaner/internal/normalize"
	"github.com/JonMunkholm/datacleaner/internal/report"
)

// CRMKey identifies the client-file pipeline.
const CRMKey = "crm"

// CRM column names added by the pipeline.
const (
	OriginalSuffix       = "_original"
	NormalisedSuffix     = "_normalise"
	ValidBirthdateColumn = "date_naissance_valide"
)

// Quality snapshot names.
const (
	crmBefore = "Clients (AVANT)"
	crmAfter  = "Clients (APRÈS)"
)

func init() {
	Register(Definition{
		Key:   CRMKey,
		Label: "CRM de qualité optimale",
		Order: 1,
		Run:   RunCRM,
	})
}

type crm struct {
	env      *Env
	dayFirst bool
	ages     normalize.AgeRange
	policy   core.KeepPolicy
}

// RunCRM cleans the client file: emails, countries, phones and birthdates
// are normalised with the raw values kept in shadow columns, duplicates
// are merged, and the cleaned file and its KPI reports are written.
func RunCRM(ctx context.Context, env *Env) (*Result, error) {
	cfg := env.Config
	logger := logging.FromContext(ctx)

	raw, err := csv.Load(cfg.CRM.Input)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	env.Metrics.AddRowsLoaded(CRMKey, raw.Len())
	logger.Info("clients loaded", "path", cfg.CRM.Input, "rows", raw.Len(), "columns", raw.Columns)

	before := core.ComputeQuality(raw, crmBefore)
	env.Metrics.SetCompleteness(CRMKey, "before", before.GlobalCompletenessRate)
	env.printQuality(before)

	c := &crm{
		env:      env,
		dayFirst: cfg.Cleaning.DayFirst,
		ages:     normalize.AgeRange{Min: cfg.Cleaning.BirthMinAge, Max: cfg.Cleaning.BirthMaxAge},
		policy:   cfg.Cleaning.KeepPolicy(),
	}
	cleaned, err := env.runStages(ctx, CRMKey, raw, []stage{
		{"emails", c.emails},
		{"countries", c.countries},
		{"phones", c.phones},
		{"birthdates", c.birthdates},
		{"dedupe", c.dedupe},
	})
	if err != nil {
		return nil, err
	}

	after := core.ComputeQuality(cleaned, crmAfter)
	env.Metrics.SetCompleteness(CRMKey, "after", after.GlobalCompletenessRate)
	env.printQuality(after)

	res := &Result{
		Pipeline: CRMKey,
		RowsIn:   raw.Len(),
		RowsOut:  cleaned.Len(),
		Before:   before,
		After:    after,
	}
	if err := c.save(ctx, cleaned, res); err != nil {
		return nil, err
	}
	logger.Info("crm cleaning complete", "rows_in", res.RowsIn, "rows_out", res.RowsOut)
	return res, nil
}

func (c *crm) emails(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	col, ok := core.FindColumn(ds.Columns, core.EmailKeywords...)
	if !ok {
		c.env.skip(ctx, CRMKey, "emails", "no email column found")
		return ds, nil
	}

	total := ds.Len()
	validBefore := 0
	for _, v := range ds.Column(col) {
		if normalize.IsValidEmail(v) {
			validBefore++
		}
	}

	out, err := shadow(ds, col)
	if err != nil {
		return nil, err
	}
	out, err = out.MapColumn(col, func(v any) any { return core.CellOf(normalize.Email(v)) })
	if err != nil {
		return nil, err
	}

	validAfter := out.NonMissingCount(col)
	c.env.Metrics.AddRejected(CRMKey, "email", ds.NonMissingCount(col)-validAfter)
	logging.WithFields(ctx, "stage", "emails", "column", col).Info("emails normalised",
		"valid_before", validBefore,
		"valid_after", validAfter,
		"total", total,
		"valid_after_pct", percentOf(validAfter, total),
		"invalid_removed", total-validAfter,
	)
	return out, nil
}

func (c *crm) countries(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	col, ok := core.FindColumn(ds.Columns, core.CountryKeywords...)
	if !ok {
		c.env.skip(ctx, CRMKey, "countries", "no country column found")
		return ds, nil
	}

	variantsBefore := ds.DistinctCount(col)
	out, err := shadow(ds, col)
	if err != nil {
		return nil, err
	}
	out, err = out.MapColumn(col, func(v any) any { return core.CellOf(normalize.Country(v)) })
	if err != nil {
		return nil, err
	}

	variantsAfter := out.DistinctCount(col)
	logging.WithFields(ctx, "stage", "countries", "column", col).Info("countries standardised",
		"variants_before", variantsBefore,
		"variants_after", variantsAfter,
		"reduction", variantsBefore-variantsAfter,
	)
	return out, nil
}

// phones leaves the source column untouched and adds the normalised number
// next to the shadow copy.
func (c *crm) phones(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	col, ok := core.FindColumn(ds.Columns, core.PhoneKeywords...)
	if !ok {
		c.env.skip(ctx, CRMKey, "phones", "no phone column found")
		return ds, nil
	}

	out, err := shadow(ds, col)
	if err != nil {
		return nil, err
	}
	out = out.WithColumn(col+NormalisedSuffix, func(r core.Record) any {
		return core.CellOf(normalize.Phone(r[col]))
	})

	total := ds.Len()
	validBefore := ds.NonMissingCount(col)
	validAfter := out.NonMissingCount(col + NormalisedSuffix)
	c.env.Metrics.AddRejected(CRMKey, "phone", validBefore-validAfter)
	logging.WithFields(ctx, "stage", "phones", "column", col).Info("phones normalised",
		"valid_before", validBefore,
		"valid_after", validAfter,
		"total", total,
		"invalid", total-validAfter,
	)
	return out, nil
}

// birthdates parses the birthdate column, flags plausible dates in
// ValidBirthdateColumn and blanks the rest.
func (c *crm) birthdates(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	col, ok := core.FindColumn(ds.Columns, core.BirthdateKeywords...)
	if !ok {
		c.env.skip(ctx, CRMKey, "birthdates", "no birthdate column found")
		return ds, nil
	}

	now := c.env.now()
	out, err := shadow(ds, col)
	if err != nil {
		return nil, err
	}
	out, err = out.MapColumn(col, func(v any) any { return core.CellOf(normalize.ParseDate(v, c.dayFirst)) })
	if err != nil {
		return nil, err
	}
	out = out.WithColumn(ValidBirthdateColumn, func(r core.Record) any {
		return normalize.IsValidBirthdate(normalize.ParseDate(r[col], c.dayFirst), now, c.ages)
	})
	out = out.WithColumn(col, func(r core.Record) any {
		if valid, _ := r[ValidBirthdateColumn].(bool); valid {
			return r[col]
		}
		return nil
	})

	total := ds.Len()
	valid := out.NonMissingCount(col)
	c.env.Metrics.AddRejected(CRMKey, "birthdate", ds.NonMissingCount(col)-valid)
	logging.WithFields(ctx, "stage", "birthdates", "column", col).Info("birthdates validated",
		"valid", valid,
		"total", total,
		"invalid", total-valid,
		"min_age", c.ages.Min,
		"max_age", c.ages.Max,
	)
	return out, nil
}

// dedupe merges rows sharing identity columns. Without identity columns the
// stage is skipped and the run continues.
func (c *crm) dedupe(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	keys := core.FindColumns(ds.Columns, core.IdentityKeywords, []string{"original"})
	out, err := core.Dedupe(ds, keys, c.policy)
	if err != nil {
		if core.IsFatal(err) {
			return nil, err
		}
		c.env.skip(ctx, CRMKey, "dedupe", "cannot detect key columns for deduplication",
			"code", core.MapError(err).Code, "error", err)
		return ds, nil
	}

	removed := ds.Len() - out.Len()
	c.env.Metrics.AddDuplicatesRemoved(CRMKey, removed)
	logging.WithFields(ctx, "stage", "dedupe").Info("duplicates removed",
		"key_columns", keys,
		"policy", string(c.policy),
		"rows_before", ds.Len(),
		"rows_after", out.Len(),
		"removed", removed,
		"removed_pct", percentOf(removed, ds.Len()),
	)
	return out, nil
}

func (c *crm) save(ctx context.Context, cleaned *core.Dataset, res *Result) error {
	cfg := c.env.Config
	logger := logging.FromContext(ctx)

	if err := csv.Write(cfg.CRM.Output, cleaned); err != nil {
		return err
	}
	c.env.Metrics.AddRowsWritten(CRMKey, cleaned.Len())
	res.Outputs = append(res.Outputs, cfg.CRM.Output)
	logger.Info("cleaned clients saved", "path", cfg.CRM.Output)

	rows := report.Compare(res.Before, res.After)
	if err := report.WriteKPI(cfg.CRM.Report, rows); err != nil {
		return err
	}
	res.Outputs = append(res.Outputs, cfg.CRM.Report)
	logger.Info("kpi report saved", "path", cfg.CRM.Report)

	if cfg.CRM.HTMLReport != "" {
		page := report.KPIPage("Qualité des données CRM", logging.RunID(ctx), rows, res.Before, res.After, cfg.Report.WarnThreshold)
		if err := report.WriteHTML(ctx, cfg.CRM.HTMLReport, page); err != nil {
			return err
		}
		res.Outputs = append(res.Outputs, cfg.CRM.HTMLReport)
		logger.Info("html report saved", "path", cfg.CRM.HTMLReport)
	}

	return c.env.printComparison(rows)
}

// shadow copies col into col+OriginalSuffix.
func shadow(ds *core.Dataset, col string) (*core.Dataset, error) {
	return ds.CopyColumn(col, col+OriginalSuffix)
}

// percentOf returns part/total in percent with one decimal, 0 for an empty total.
func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return core.Round(float64(part)/float64(total)*100, 1)
}
