package domain_test

import (
	"testing"
	"time"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func auditEntryFixture() domain.AuditLogEntry {
	before := `{"totalKg":"100.000 kg"}`
	after := `{"totalKg":"70.000 kg"}`
	return domain.AuditLogEntry{
		AuditID:         "a1",
		Action:          domain.ActionBatchSplit,
		EntityType:      "warehouse_batch",
		EntityID:        "b1",
		Before:          &before,
		After:           &after,
		ChangedFields:   []string{"totalKg"},
		FinancialImpact: decimal.Zero,
		CurrencyCode:    "USD",
		ActorID:         "user-1",
		CorrelationID:   "corr-1",
		CreatedAt:       time.Date(2025, 3, 14, 9, 26, 53, 589, time.UTC),
	}
}

func TestAuditLogEntry_ChecksumRoundTrip(t *testing.T) {
	entry := auditEntryFixture()
	entry.Checksum = entry.ComputeChecksum()
	assert.True(t, entry.VerifyChecksum())
}

func TestAuditLogEntry_ChecksumDetectsTampering(t *testing.T) {
	entry := auditEntryFixture()
	entry.Checksum = entry.ComputeChecksum()

	tampered := entry
	tampered.EntityID = "b2"
	assert.False(t, tampered.VerifyChecksum())

	tampered = entry
	altered := `{"totalKg":"99.000 kg"}`
	tampered.After = &altered
	assert.False(t, tampered.VerifyChecksum())

	tampered = entry
	tampered.ActorID = "someone-else"
	assert.False(t, tampered.VerifyChecksum())

	tampered = entry
	tampered.CreatedAt = tampered.CreatedAt.Add(time.Microsecond)
	assert.False(t, tampered.VerifyChecksum())
}

func TestAuditLogEntry_ChecksumSurvivesStoreRoundTrip(t *testing.T) {
	entry := auditEntryFixture()
	// Nanosecond-precision creation time, as the clock hands it out.
	entry.CreatedAt = time.Date(2025, 3, 14, 9, 26, 53, 589123457, time.UTC)
	entry.Checksum = entry.ComputeChecksum()

	// The created_at column keeps microseconds, so a read-back loses the
	// sub-microsecond digits.
	stored := entry
	stored.CreatedAt = stored.CreatedAt.Truncate(time.Microsecond)
	assert.True(t, stored.VerifyChecksum())
}

func TestAuditLogEntry_ChecksumIgnoresNonSemanticFields(t *testing.T) {
	entry := auditEntryFixture()
	entry.Checksum = entry.ComputeChecksum()

	// Correlation id and changed-field list are outside the hashed subset.
	entry.CorrelationID = "corr-2"
	entry.ChangedFields = nil
	assert.True(t, entry.VerifyChecksum())
}

func TestAuditLogEntry_ChecksumStableAcrossTimezones(t *testing.T) {
	entry := auditEntryFixture()
	sum := entry.ComputeChecksum()

	loc := time.FixedZone("UTC+3", 3*60*60)
	entry.CreatedAt = entry.CreatedAt.In(loc)
	assert.Equal(t, sum, entry.ComputeChecksum())
}

func TestAuditLogEntry_NilSnapshots(t *testing.T) {
	entry := auditEntryFixture()
	entry.Before = nil
	entry.After = nil
	entry.Checksum = entry.ComputeChecksum()
	assert.True(t, entry.VerifyChecksum())
}
