package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go-roadwatch/types"
)

const regencyStatsCollection = "kabupaten_stats"

// SaveRegencyStats upserts the materialized per-kabupaten aggregates using
// BulkWriter. The document ID is the kabupaten code; the cron job refreshes the
// whole collection, so stale regions are simply overwritten next run.
func SaveRegencyStats(ctx context.Context, client *firestore.Client, items map[string]types.RegionStatsItem) error {
	if len(items) == 0 {
		return nil
	}

	bw := client.BulkWriter(ctx)
	collRef := client.Collection(regencyStatsCollection)

	for kode, item := range items {
		doc := map[string]interface{}{
			"nama":   item.Nama,
			"total":  item.Data.Total,
			"parah":  item.Data.Parah,
			"sedang": item.Data.Sedang,
			"ringan": item.Data.Ringan,
		}
		if _, err := bw.Set(collRef.Doc(kode), doc); err != nil {
			return fmt.Errorf("error enqueueing stats for kabupaten %s: %w", kode, err)
		}
	}

	// Flush sends any remaining writes and waits for them to complete.
	bw.Flush()
	return nil
}
