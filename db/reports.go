package db

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"go-roadwatch/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	reportsCollection  = "road_damages"
	countersCollection = "counters"
	reportCounterDoc   = "road_damages"
)

// ReportStore adapts the Firestore-backed report collection to the stats
// engine's ReportSource interface.
type ReportStore struct {
	Client *firestore.Client
}

func (s *ReportStore) GetAllReports(ctx context.Context) ([]types.DamageReport, error) {
	return GetAllReports(ctx, s.Client)
}

// GetAllReports retrieves every damage report. Aggregation is a single linear
// pass over this slice, so one full scan per request is the expected cost.
func GetAllReports(ctx context.Context, client *firestore.Client) ([]types.DamageReport, error) {
	var reports []types.DamageReport

	iter := client.Collection(reportsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating %s collection: %w", reportsCollection, err)
		}

		var report types.DamageReport
		if err := doc.DataTo(&report); err != nil {
			return nil, fmt.Errorf("error converting document %s to DamageReport: %w", doc.Ref.ID, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// GetReportsByRegency retrieves the reports for one kabupaten/kota code.
func GetReportsByRegency(ctx context.Context, client *firestore.Client, kode string) ([]types.DamageReport, error) {
	var reports []types.DamageReport

	iter := client.Collection(reportsCollection).
		Where("kode_kabupaten_kota", "==", kode).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error querying reports for kabupaten %s: %w", kode, err)
		}

		var report types.DamageReport
		if err := doc.DataTo(&report); err != nil {
			return nil, fmt.Errorf("error converting document %s to DamageReport: %w", doc.Ref.ID, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// counterDoc mirrors the counters/road_damages document.
type counterDoc struct {
	Value int `firestore:"value"`
}

// InsertReport assigns the next report ID and persists the report in a single
// transaction. The counter document is the only ordering point between
// concurrent submissions; reading and incrementing it transactionally is what
// prevents duplicate IDs.
func InsertReport(ctx context.Context, client *firestore.Client, report types.DamageReport) (int, error) {
	// Ingestion maps every detector label to a canonical severity before this
	// point; anything else would silently skew the aggregates.
	if !report.Severity.Valid() {
		return 0, fmt.Errorf("refusing to insert report with severity %q", report.Severity)
	}

	counterRef := client.Collection(countersCollection).Doc(reportCounterDoc)

	// Seed value used only when the counter document does not exist yet
	// (first deployment over pre-imported data). The scan happens outside the
	// transaction; the transaction re-checks existence so two racing seeders
	// still serialize on the counter write.
	seed, err := maxReportID(ctx, client)
	if err != nil {
		return 0, err
	}

	assignedID := 0
	err = client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		next := seed + 1
		snap, err := tx.Get(counterRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return fmt.Errorf("error reading report counter: %w", err)
		}
		if err == nil {
			var c counterDoc
			if err := snap.DataTo(&c); err != nil {
				return fmt.Errorf("error decoding report counter: %w", err)
			}
			next = c.Value + 1
		}

		report.ID = next
		docRef := client.Collection(reportsCollection).Doc(strconv.Itoa(next))
		if err := tx.Set(counterRef, counterDoc{Value: next}); err != nil {
			return fmt.Errorf("error updating report counter: %w", err)
		}
		if err := tx.Set(docRef, report); err != nil {
			return fmt.Errorf("error writing report %d: %w", next, err)
		}
		assignedID = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return assignedID, nil
}

// maxReportID scans for the highest existing report ID.
func maxReportID(ctx context.Context, client *firestore.Client) (int, error) {
	iter := client.Collection(reportsCollection).
		OrderBy("id", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error finding max report id: %w", err)
	}

	var report types.DamageReport
	if err := doc.DataTo(&report); err != nil {
		return 0, fmt.Errorf("error decoding max report id: %w", err)
	}
	return report.ID, nil
}
