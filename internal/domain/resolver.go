package domain

import (
	"sort"

	m "github.com/cluttercut/cluttercut/internal/model"
)

// Resolve computes the unused report: every record in universe whose GUID
// never appears in referenced, ordered by descending byte size with ties
// broken by ascending asset path. Pure function; empty inputs produce the
// expected empty or full reports.
func Resolve(universe m.CandidateUniverse, referenced m.ReferencedSet) m.UnusedReport {
	report := make(m.UnusedReport, 0, len(universe))

	for guid, record := range universe {
		if !referenced.Contains(guid) {
			report = append(report, record)
		}
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].Size != report[j].Size {
			return report[i].Size > report[j].Size
		}

		return report[i].AssetPath < report[j].AssetPath
	})

	return report
}
