package seeds

import (
	"context"
	"log"

	"gorm.io/gorm"

	"academy_backend/internals/configs"
	templates "academy_backend/internals/seeds/certificates/templates"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB, cfg configs.AppConfig) error {

	//* Certificate templates
	n, err := templates.SeedTemplatesFromYAML(ctx, db, cfg.TemplateSeedFile)
	if err != nil {
		return err
	}
	log.Printf("[INFO] seeded %d certificate template(s)", n)
	return nil
}
