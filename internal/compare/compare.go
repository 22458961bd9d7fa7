// Package compare computes schema drift between a local OpenAPI export
// and the schema stored in APIDOG Cloud, as a set difference of
// endpoint paths.
package compare

import (
	"github.com/ennam/apidog-sync/internal/schema"
)

// Report is the result of diffing two schema documents.
type Report struct {
	LocalTotal int
	CloudTotal int
	Common     int
	// OnlyLocal holds paths present locally but not in the cloud, sorted.
	OnlyLocal []string
	// OnlyCloud holds paths present in the cloud but not locally, sorted.
	OnlyCloud []string
}

// InSync reports whether the two path sets are identical.
func (r Report) InSync() bool {
	return len(r.OnlyLocal) == 0 && len(r.OnlyCloud) == 0
}

// Diff compares the endpoint paths of the local and cloud documents.
func Diff(local, cloud schema.Document) Report {
	localPaths := local.Paths()
	cloudPaths := cloud.Paths()

	cloudSet := make(map[string]struct{}, len(cloudPaths))
	for _, p := range cloudPaths {
		cloudSet[p] = struct{}{}
	}
	localSet := make(map[string]struct{}, len(localPaths))
	for _, p := range localPaths {
		localSet[p] = struct{}{}
	}

	report := Report{
		LocalTotal: len(localPaths),
		CloudTotal: len(cloudPaths),
	}
	for _, p := range localPaths {
		if _, ok := cloudSet[p]; ok {
			report.Common++
		} else {
			report.OnlyLocal = append(report.OnlyLocal, p)
		}
	}
	for _, p := range cloudPaths {
		if _, ok := localSet[p]; !ok {
			report.OnlyCloud = append(report.OnlyCloud, p)
		}
	}
	// Paths() returns sorted slices, so both diff slices are already
	// in order.
	return report
}
