package cronjobs

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go-roadwatch/db"
	"go-roadwatch/stats"
)

const refreshLockKey = "lock:refresh-kabupaten-stats"

// InitCronJobs schedules the periodic materialization of per-kabupaten
// aggregates into the kabupaten_stats collection and the stats cache. Returns
// the scheduler so main can Stop it on shutdown.
func InitCronJobs(
	firestoreClient *firestore.Client,
	engine *stats.Engine,
	locker *redislock.Client,
	logg *logrus.Logger,
) *cron.Cron {
	c := cron.New()

	// Stats refresh: every 15 minutes.
	_, err := c.AddFunc("*/15 * * * *", func() {
		refreshRegencyStats(firestoreClient, engine, locker, logg)
	})
	if err != nil {
		logg.WithError(err).Error("error scheduling stats refresh")
	}

	c.Start()
	return c
}

func refreshRegencyStats(
	firestoreClient *firestore.Client,
	engine *stats.Engine,
	locker *redislock.Client,
	logg *logrus.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// With several instances behind Cloud Run, only one should do the
	// recompute. No locker means single-instance mode; just run.
	if locker != nil {
		lock, err := locker.Obtain(ctx, refreshLockKey, 2*time.Minute, nil)
		if err == redislock.ErrNotObtained {
			logg.Debug("stats refresh already running elsewhere, skipping")
			return
		}
		if err != nil {
			logg.WithError(err).Warn("failed to obtain stats refresh lock")
			return
		}
		defer lock.Release(ctx)
	}

	logg.Info("cron: refreshing kabupaten stats")

	// Drop the cache first so the recompute below repopulates it from the
	// store instead of reading its own stale state back.
	engine.Invalidate(ctx)

	items, err := engine.AggregateByRegency(ctx)
	if err != nil {
		logg.WithError(err).Error("cron: failed to aggregate kabupaten stats")
		return
	}

	if err := db.SaveRegencyStats(ctx, firestoreClient, items); err != nil {
		logg.WithError(err).Error("cron: failed to save kabupaten stats")
		return
	}

	logg.WithField("regions", len(items)).Info("cron: kabupaten stats refreshed")
}
