package db

import (
	"context"
	"testing"

	"go-roadwatch/types"
)

func TestInsertReportRejectsInvalidSeverity(t *testing.T) {
	// The severity check runs before any Firestore access, so no client is
	// needed to exercise the rejection.
	tests := []types.Severity{"", "unknown", "BERAT"}
	for _, sev := range tests {
		report := types.DamageReport{
			RegencyCode: "3204",
			Severity:    sev,
		}
		if _, err := InsertReport(context.Background(), nil, report); err == nil {
			t.Errorf("InsertReport accepted severity %q", sev)
		}
	}
}
