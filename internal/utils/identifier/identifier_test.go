package identifier_test

import (
	"testing"
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/identifier"
	"github.com/stretchr/testify/assert"
)

var at = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func TestSplitBatchNumber(t *testing.T) {
	assert.Equal(t, "B1-SPLIT-20250314092653", identifier.SplitBatchNumber("B1", at))
}

func TestSplitBatchNumber_TimestampInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t,
		identifier.SplitBatchNumber("B1", at),
		identifier.SplitBatchNumber("B1", at.In(loc)),
	)
}

func TestMergeBatchNumber_OrderIndependent(t *testing.T) {
	a := identifier.MergeBatchNumber([]string{"B3", "B2"}, at)
	b := identifier.MergeBatchNumber([]string{"B2", "B3"}, at)
	assert.Equal(t, "MERGE-B2+B3-20250314092653", a)
	assert.Equal(t, a, b)
}

func TestMergeBatchNumber_DoesNotMutateInput(t *testing.T) {
	sources := []string{"B3", "B2"}
	identifier.MergeBatchNumber(sources, at)
	assert.Equal(t, []string{"B3", "B2"}, sources)
}
