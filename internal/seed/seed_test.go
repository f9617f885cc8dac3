package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogKeepsSlugOrder(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(c.Services), 3)
	require.Equal(t, "Photography", c.Services[0].Title)
	require.Equal(t, "Videography", c.Services[1].Title)
	require.Equal(t, "VFX", c.Services[2].Title)
	require.NotEmpty(t, c.Portfolio)
	require.NotNil(t, c.Content)
	require.Equal(t, "hello@cinecraft.media", c.Content.ContactEmail)
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	_, err := Parse([]byte("services:\n  - title: Drone\n    price: -5\n"))
	require.ErrorContains(t, err, "services[0]")

	_, err = Parse([]byte("portfolio:\n  - title: X\n    description: Y\n    status: archived\n"))
	require.ErrorContains(t, err, "portfolio[0]")

	_, err = Parse([]byte("services: [unclosed"))
	require.ErrorContains(t, err, "parse seed catalog")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
services:
  - title: Drone Survey
    description: Mapping flights
    price: 900
    features: [Mapping, Orthophotos]
portfolio:
  - title: Harbor
    description: Sunrise over the harbor
    tags: [Aerial, Sunrise]
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Mapping", "Orthophotos"}, c.Services[0].Features)
	require.Equal(t, []string{"Aerial", "Sunrise"}, []string(c.Portfolio[0].Tags))
	require.Nil(t, c.Content)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyOnlyFillsEmptyTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c, err := Parse([]byte(`
services:
  - title: Photography
    description: Stills
    price: 800
portfolio:
  - title: Harbor
    description: Sunrise
content:
  hero_headline: Hello
`))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM services`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO services`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM portfolio_items`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(4))
	mock.ExpectQuery(`FROM site_content`).WillReturnRows(sqlmock.NewRows([]string{"content_key", "content_value", "updated_at"}))
	mock.ExpectBegin()
	for i := 0; i < 5; i++ {
		mock.ExpectExec(`INSERT INTO site_content`).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	res, err := Apply(context.Background(), db, c)
	require.NoError(t, err)
	require.Equal(t, Result{Services: 1, Portfolio: 0, Content: true}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySkipsExistingContent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM services`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectQuery(`FROM portfolio_items`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectQuery(`FROM site_content`).WillReturnRows(sqlmock.NewRows([]string{"content_key", "content_value", "updated_at"}).
		AddRow("hero_headline", "Existing", time.Now()))

	c, err := Load("")
	require.NoError(t, err)
	res, err := Apply(context.Background(), db, c)
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}
