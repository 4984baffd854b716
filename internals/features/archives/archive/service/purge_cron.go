package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/storage"
)

// StartTrashPurge menjadwalkan pembersihan corbeille arsip. Panggil Stop()
// pada cron yang dikembalikan saat shutdown.
func StartTrashPurge(db *gorm.DB, st storage.Store, schedule string, retentionDays int) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(dbtime.SchoolLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		n, err := PurgeExpired(ctx, db, st, dbtime.Now(), retentionDays)
		if err != nil {
			log.Printf("[TRASH-PURGE] error: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[TRASH-PURGE] %d dossier dihapus permanen", n)
		}
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[TRASH-PURGE] started schedule=%q retention=%dd", schedule, retentionDays)
	c.Start()
	return c, nil
}
