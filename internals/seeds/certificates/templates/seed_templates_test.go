package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy_backend/internals/databases/dbtest"
	tplService "academy_backend/internals/features/certificates/templates/service"
)

func TestSeedTemplatesFromYAML(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	n, err := SeedTemplatesFromYAML(ctx, db, "../templates.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, lang := range []string{"ar", "en"} {
		tpl, err := tplService.FindDefaultActive(ctx, db, lang)
		require.NoError(t, err, lang)
		assert.Len(t, tpl.Fields, 7)
	}

	n, err = SeedTemplatesFromYAML(ctx, db, "../templates.yaml")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedTemplatesMissingFile(t *testing.T) {
	_, err := SeedTemplatesFromYAML(context.Background(), dbtest.Open(t), "does-not-exist.yaml")
	assert.Error(t, err)
}
