package model

// UnusedReport is the ordered sequence of asset records present in the
// candidate universe but absent from the referenced set, ordered by
// descending byte size with ties broken by ascending asset path.
type UnusedReport []AssetRecord

// ReclaimableBytes sums the sizes of all unused assets.
func (r UnusedReport) ReclaimableBytes() int64 {
	var total int64
	for _, record := range r {
		total += record.Size
	}

	return total
}

// ScanStats holds the aggregate counts of a completed run.
type ScanStats struct {
	Candidates       int
	ContentFiles     int
	Unused           int
	ReclaimableBytes int64
}

// ScanOutcome is the full result of a run, handed to the presentation layer.
type ScanOutcome struct {
	AssetsRoot Path
	Report     UnusedReport
	Stats      ScanStats
	Conflicts  []IdentifierConflict
	Warnings   []Warning
}
