package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkup-app/linkup-engine/internal/domain"
)

const validCatalogJSON = `{
	"cases": [
		{"id": "starter", "price": 100, "items": [
			{"type": "sticker", "value": 20},
			{"type": "badge", "value": 150}
		]},
		{"id": "premium", "price": 500, "items": [
			{"type": "golden_badge", "value": 800}
		]}
	]
}`

func TestParseCaseCatalog(t *testing.T) {
	cc, err := ParseCaseCatalog([]byte(validCatalogJSON))
	require.NoError(t, err)

	c, err := cc.GetCase("starter")
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.Price)
	assert.Len(t, c.Items, 2)
}

func TestGetCase_NotFound(t *testing.T) {
	cc, err := ParseCaseCatalog([]byte(validCatalogJSON))
	require.NoError(t, err)

	_, err = cc.GetCase("no-such-case")
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
}

func TestParseCaseCatalog_RejectsEmptyItems(t *testing.T) {
	_, err := ParseCaseCatalog([]byte(`{"cases": [{"id": "empty", "price": 10, "items": []}]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestParseCaseCatalog_RejectsNegativeValue(t *testing.T) {
	_, err := ParseCaseCatalog([]byte(`{"cases": [{"id": "bad", "price": 10, "items": [{"type": "x", "value": -1}]}]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestParseCaseCatalog_RejectsDuplicateIDs(t *testing.T) {
	_, err := ParseCaseCatalog([]byte(`{"cases": [
		{"id": "dup", "price": 10, "items": [{"type": "x", "value": 1}]},
		{"id": "dup", "price": 20, "items": [{"type": "y", "value": 2}]}
	]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestParseCaseCatalog_RejectsMalformedJSON(t *testing.T) {
	_, err := ParseCaseCatalog([]byte(`{"cases": [`))
	assert.Error(t, err)
}
