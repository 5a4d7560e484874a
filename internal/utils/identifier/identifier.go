// Package identifier generates the human-readable batch numbers produced by
// split and merge operations. Generation is a pure function of its inputs so
// it is unit-testable without a database.
package identifier

import (
	"sort"
	"strings"
	"time"
)

const timestampFormat = "20060102150405"

// SplitBatchNumber names the descendant created by splitting parent at the
// given time, e.g. "B1-SPLIT-20250314092653".
func SplitBatchNumber(parentNumber string, at time.Time) string {
	return parentNumber + "-SPLIT-" + at.UTC().Format(timestampFormat)
}

// MergeBatchNumber names the batch created by merging the given source batch
// numbers, e.g. "MERGE-B2+B3-20250314092653". Sources are joined in sorted
// order so the name is independent of request ordering.
func MergeBatchNumber(sourceNumbers []string, at time.Time) string {
	sorted := make([]string, len(sourceNumbers))
	copy(sorted, sourceNumbers)
	sort.Strings(sorted)
	return "MERGE-" + strings.Join(sorted, "+") + "-" + at.UTC().Format(timestampFormat)
}
