package seeds

import (
	"context"

	"gorm.io/gorm"

	"schoolku_backend/internals/seeds/school"
)

const DefaultDataFile = "internals/seeds/data/school.json"

// RunAllSeeds: data demo sekolah (users, classes, cours, enseignements, élèves).
func RunAllSeeds(ctx context.Context, db *gorm.DB, path string) error {
	if path == "" {
		path = DefaultDataFile
	}
	_, err := school.SeedFromJSON(ctx, db, path)
	return err
}
