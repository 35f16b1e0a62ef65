// Package core provides the dataset model and whole-dataset reducers for
// the cleaning pipelines.
//
// This package is the heart of the cleaner, containing the logic that
// needs a materialised view of a dataset. It has no file, console or
// logging dependencies and can be used by pipelines, CLI tools, or tests
// without modification.
//
// # Dataset Model
//
// A [Dataset] is an ordered list of [Record] values sharing a column list.
// Cells are plain Go values or nil for a missing value. Transform methods
// ([Dataset.WithColumn], [Dataset.MapColumn], [Dataset.LeftJoin], ...)
// return new datasets, so a stage can keep the previous state around for
// before/after comparisons:
//
//	shadowed, _ := ds.CopyColumn("email", "email_original")
//	cleaned, _ := shadowed.MapColumn("email", normalizeEmail)
//
// # Column Detection
//
// Input files have no fixed schema. [FindColumn] picks the first header
// containing one of a keyword list (case-insensitive), e.g. [EmailKeywords].
//
// # Reducers
//
//   - [CompletenessScore]: non-missing cell count of a row.
//   - [Dedupe]: collapse rows sharing key values, keeping the most complete,
//     first, or last row of each group.
//   - [ComputeQuality]: completeness, duplicate and missing-value rates.
//
// # Error Handling
//
// Run-level failures use the sentinels in error_messages.go and are mapped
// to operator messages with codes by [MapError].
package core
