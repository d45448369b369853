package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio.dev/internal/models"
)

func TestScaffold_AddsMissingEntriesOnly(t *testing.T) {
	tables := &models.OverlayTables{
		Images: map[string]string{"XMeme": "/static/images/projects/xmeme.png"},
		Scope:  map[string][]string{"X-Meme": {"Built the feed"}},
	}
	repos := []models.Repository{
		{Name: "XMeme", Language: "Java"},
		{Name: "QEats", Language: "Java"},
		{Name: "notes"},
	}

	touched := Scaffold(tables, repos)

	assert.Equal(t, []string{"XMeme", "QEats", "notes"}, touched)
	assert.Equal(t, "/static/images/projects/xmeme.png", tables.Images["XMeme"])
	assert.Equal(t, "/static/images/projects/qeats.png", tables.Images["QEats"])
	assert.Equal(t, []string{"Built the feed"}, tables.Scope["X-Meme"])
	assert.NotContains(t, tables.Scope, "xmeme")
	assert.Equal(t, []string{"Java"}, tables.Technologies["xmeme"])
	assert.Equal(t, []string{}, tables.Technologies["notes"])

	assert.Empty(t, Scaffold(tables, repos), "a second pass changes nothing")
}

func TestScaffold_ResultFeedsOverlay(t *testing.T) {
	tables := &models.OverlayTables{}
	Scaffold(tables, []models.Repository{{Name: "qmoney", Language: "Java"}})

	o := NewOverlay(*tables)
	assert.Equal(t, "/static/images/projects/qmoney.png", o.ImageURL("qmoney"))
	assert.Equal(t, []string{"Java"}, o.Technologies("QMoney"))
	assert.Equal(t, []string{}, o.ScopeBullets("qmoney"))
}

func TestScaffold_SkipsNamesWithoutKey(t *testing.T) {
	tables := &models.OverlayTables{}
	touched := Scaffold(tables, []models.Repository{{Name: "---"}, {Name: "_.-"}, {Name: "ok"}})

	assert.Equal(t, []string{"ok"}, touched)
	assert.NotContains(t, tables.Images, "---")
	assert.NotContains(t, tables.Scope, "")
	assert.NotContains(t, tables.Technologies, "")
	for _, url := range tables.Images {
		assert.NotEqual(t, "/static/images/projects/.png", url)
	}
}
