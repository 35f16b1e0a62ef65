// Package csv loads raw input files into core datasets and writes cleaned
// datasets and report tables back out.
//
// Loading decodes the file as UTF-8 (a leading byte order mark selects
// UTF-8 or UTF-16 instead), replaces invalid bytes, and turns the usual
// spreadsheet missing-value markers ("", "NA", "N/A", "null", ...) into
// missing cells. Every other cell is kept as its raw string: typing is left
// to the normalisers.
//
// Writes go to a temporary file in the destination directory that is
// renamed into place, so a failed run never leaves a partial output.
package csv
