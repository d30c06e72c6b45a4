package templates

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	tplModel "academy_backend/internals/features/certificates/templates/model"
	tplService "academy_backend/internals/features/certificates/templates/service"
)

type TemplateSeed struct {
	Name            string           `yaml:"name"`
	Language        string           `yaml:"language"`
	BackgroundImage string           `yaml:"background_image"`
	Width           *int             `yaml:"background_width"`
	Height          *int             `yaml:"background_height"`
	Default         bool             `yaml:"default"`
	Fields          []tplModel.Field `yaml:"fields"`
}

type seedFile struct {
	Templates []TemplateSeed `yaml:"templates"`
}

// SeedTemplatesFromYAML membuat template yang belum ada (berdasarkan name +
// language) lewat TemplateService, jadi validasi field tetap berlaku. Template
// bertanda default hanya dipromosikan kalau bahasa itu belum punya default.
func SeedTemplatesFromYAML(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Membaca file:", filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var data seedFile
	if err := yaml.Unmarshal(content, &data); err != nil {
		return 0, fmt.Errorf("decode seed yaml: %w", err)
	}

	svc := tplService.NewTemplateService(db)
	created := 0
	for _, item := range data.Templates {
		var n int64
		if err := db.WithContext(ctx).Model(&tplModel.CertificateTemplateModel{}).
			Where("name = ? AND language = ?", item.Name, item.Language).
			Count(&n).Error; err != nil {
			return created, err
		}
		if n > 0 {
			log.Printf("ℹ️ Template %q (%s) sudah ada, lewati...", item.Name, item.Language)
			continue
		}

		m, err := svc.Create(ctx, tplService.CreateInput{
			Name:             item.Name,
			Language:         item.Language,
			BackgroundImage:  item.BackgroundImage,
			BackgroundWidth:  item.Width,
			BackgroundHeight: item.Height,
			Fields:           item.Fields,
		})
		if err != nil {
			return created, fmt.Errorf("seed template %q: %w", item.Name, err)
		}
		created++
		log.Printf("✅ Berhasil insert template %q (%s)", item.Name, item.Language)

		if !item.Default {
			continue
		}
		if _, err := tplService.FindDefaultActive(ctx, db, m.Language); err == nil {
			continue
		}
		isDefault := true
		if _, err := svc.Patch(ctx, m.ID, tplService.PatchInput{IsDefault: &isDefault}); err != nil {
			return created, fmt.Errorf("promote template %q: %w", item.Name, err)
		}
	}
	return created, nil
}
