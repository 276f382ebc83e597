package checklist

import "strings"

// DownloadSuffix replaces ".pdf" in derived workbook names.
const DownloadSuffix = "_compliance_checklist.xlsx"

// DownloadName derives the workbook file name from an uploaded document name:
// the first ".pdf" occurrence is replaced with DownloadSuffix. Names without
// ".pdf" are returned unchanged.
func DownloadName(name string) string {
	return strings.Replace(name, ".pdf", DownloadSuffix, 1)
}
