package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/csv"
	"github.com/JonMunkholm/datacleaner/internal/logging"
	"github.com/JonMunkholm/datacleaner/internal/normalize"
	"github.com/JonMunkholm/datacleaner/internal/report"
)

// CatalogKey identifies the product catalog pipeline.
const CatalogKey = "catalog"

// Required catalog headers.
var (
	CatalogColumns = []string{"sku", "name", "category", "weight", "weight_unit", "price", "currency"}
	MappingColumns = []string{"source_category", "target_category"}
)

// CanonicalColumns is the column order of the canonical catalog.
var CanonicalColumns = []string{"sku", "name", "category_name", "weight_kg", "price", "currency"}

const (
	catalogBefore = "Catalogue (AVANT)"
	catalogAfter  = "Catalogue (APRÈS)"
)

func init() {
	Register(Definition{
		Key:   CatalogKey,
		Label: "Catalogue produit canonique",
		Order: 2,
		Run:   RunCatalog,
	})
}

type catalog struct {
	env     *Env
	mapping *core.Dataset
}

// RunCatalog merges the French and US catalogs into one canonical catalog
// priced in euros, weighed in kilograms and labelled with the mapped
// category names.
func RunCatalog(ctx context.Context, env *Env) (*Result, error) {
	cfg := env.Config
	logger := logging.FromContext(ctx)

	var fr, us, mapping *core.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(loadValidated(gctx, cfg.Catalog.FRInput, CatalogColumns, &fr))
	g.Go(loadValidated(gctx, cfg.Catalog.USInput, CatalogColumns, &us))
	g.Go(loadValidated(gctx, cfg.Catalog.MappingInput, MappingColumns, &mapping))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	env.Metrics.AddRowsLoaded(CatalogKey, fr.Len()+us.Len())
	logger.Info("catalogs loaded", "fr_rows", fr.Len(), "us_rows", us.Len(), "mapping_rows", mapping.Len())

	// US prices keep their source currency until conversion.
	us, err := us.Rename("currency", "currency_orig")
	if err != nil {
		return nil, err
	}
	merged := fr.Concat(us)
	merged.Name = CatalogKey

	before := core.ComputeQuality(merged, catalogBefore)
	env.Metrics.SetCompleteness(CatalogKey, "before", before.GlobalCompletenessRate)
	env.printQuality(before)

	c := &catalog{env: env, mapping: mapping}
	canonical, err := env.runStages(ctx, CatalogKey, merged, []stage{
		{"weights", c.weights},
		{"prices", c.prices},
		{"categories", c.categories},
		{"dedupe", c.dedupe},
		{"select", c.project},
	})
	if err != nil {
		return nil, err
	}

	after := core.ComputeQuality(canonical, catalogAfter)
	env.Metrics.SetCompleteness(CatalogKey, "after", after.GlobalCompletenessRate)
	env.printQuality(after)

	res := &Result{
		Pipeline: CatalogKey,
		RowsIn:   merged.Len(),
		RowsOut:  canonical.Len(),
		Before:   before,
		After:    after,
	}

	if err := csv.Write(cfg.Catalog.Output, canonical); err != nil {
		return nil, err
	}
	env.Metrics.AddRowsWritten(CatalogKey, canonical.Len())
	res.Outputs = append(res.Outputs, cfg.Catalog.Output)
	logger.Info("canonical catalog saved", "path", cfg.Catalog.Output, "rows", canonical.Len())

	rows := report.Compare(before, after)
	if err := report.WriteKPI(cfg.Catalog.Report, rows); err != nil {
		return nil, err
	}
	res.Outputs = append(res.Outputs, cfg.Catalog.Report)
	logger.Info("kpi report saved", "path", cfg.Catalog.Report)

	if err := env.printComparison(rows); err != nil {
		return nil, err
	}
	return res, nil
}

func loadValidated(ctx context.Context, path string, required []string, dst **core.Dataset) func() error {
	return func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ds, err := csv.Load(path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if err := core.ValidateDataset(ds, required); err != nil {
			return err
		}
		*dst = ds
		return nil
	}
}

func (c *catalog) weights(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	out := ds.WithColumn("weight_kg", func(r core.Record) any {
		return core.CellOf(normalize.WeightKg(r["weight"], r["weight_unit"]))
	})

	rejected := ds.NonMissingCount("weight") - out.NonMissingCount("weight_kg")
	c.env.Metrics.AddRejected(CatalogKey, "weight", rejected)
	logging.WithFields(ctx, "stage", "weights").Info("weights converted to kg", "rejected", rejected)
	return out, nil
}

// prices converts each price from its row's source currency, then labels
// every row in euros.
func (c *catalog) prices(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	converted := 0
	out := ds.WithColumn("price", func(r core.Record) any {
		currency := r["currency"]
		if v := r["currency_orig"]; !core.IsMissing(v) {
			currency = v
		}
		if normalize.IsUSD(currency) {
			converted++
		}
		return core.CellOf(normalize.PriceEUR(r["price"], currency))
	})
	out = out.WithColumn("currency", func(core.Record) any { return normalize.Euro })

	rejected := ds.NonMissingCount("price") - out.NonMissingCount("price")
	c.env.Metrics.AddRejected(CatalogKey, "price", rejected)
	logging.WithFields(ctx, "stage", "prices").Info("prices converted to euros",
		"usd_rows", converted,
		"rate", normalize.EURPerUSD,
		"rejected", rejected,
	)
	return out, nil
}

func (c *catalog) categories(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	joined, err := ds.LeftJoin(c.mapping, "category", "source_category")
	if err != nil {
		return nil, err
	}
	out, err := joined.Drop("source_category").Rename("target_category", "category_name")
	if err != nil {
		return nil, err
	}

	unmapped := out.Len() - out.NonMissingCount("category_name")
	logging.WithFields(ctx, "stage", "categories").Info("categories mapped",
		"mapped", out.Len()-unmapped,
		"unmapped", unmapped,
	)
	return out, nil
}

func (c *catalog) dedupe(ctx context.Context, ds *core.Dataset) (*core.Dataset, error) {
	out, err := core.Dedupe(ds, []string{"sku"}, core.KeepFirst)
	if err != nil {
		return nil, err
	}
	removed := ds.Len() - out.Len()
	c.env.Metrics.AddDuplicatesRemoved(CatalogKey, removed)
	logging.WithFields(ctx, "stage", "dedupe").Info("duplicate skus removed", "removed", removed)
	return out, nil
}

func (c *catalog) project(_ context.Context, ds *core.Dataset) (*core.Dataset, error) {
	return ds.Select(CanonicalColumns...)
}
