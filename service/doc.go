// Package service turns uploaded PDF documents into compliance checklists:
// page text is extracted, split into sentences and written to an xlsx
// workbook with one row per sentence.
//
// This package is intended for embedding the pipeline into other programs
// without going through the web shell or the CLI.
package service
