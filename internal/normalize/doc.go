// Package normalize provides the per-field normalisers and converters used
// by the cleaning pipelines.
//
// Every normaliser is a pure function from a raw cell to a pgtype value.
// A result with Valid=false is the missing marker: absent input and
// unparsable input are treated the same way and never produce an error.
// Pipelines lower results back into cells with core.CellOf.
//
// Lookup tables (countries, units, currencies) are package-level values
// built once at init and never modified.
package normalize
