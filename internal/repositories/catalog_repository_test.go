package repositories

import (
	"context"
	"testing"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestServiceListDecodesFeatures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM services WHERE category = \? ORDER BY id DESC`).
		WithArgs("capture").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "price", "duration", "category", "image", "features", "created_at", "updated_at"}).
			AddRow(int64(1), "Photography", "Stills", 800.0, "1 day", "capture", "", `["Portraits","Events"]`, now, now).
			AddRow(int64(2), "Videography", "Motion", 1200.0, "", "capture", "", nil, now, now))

	list, err := ServiceRepository{DB: db}.List(context.Background(), domain.ListFilter{Category: "capture"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || len(list[0].Features) != 2 || list[1].Features == nil || len(list[1].Features) != 0 {
		t.Fatalf("unexpected services %#v", list)
	}
}

func TestServiceSearchEscapesWildcards(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	like := `%100\%%`
	mock.ExpectQuery(`FROM services WHERE \(title LIKE \?`).
		WithArgs(like, like, like).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := (ServiceRepository{DB: db}).List(context.Background(), domain.ListFilter{Query: "100%"}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPortfolioCreateEncodesTags(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO portfolio_items").
		WithArgs("Reel", "Brand film", "commercial", nil, nil, "2025-06-01", `["brand","4k"]`, true, "draft", nil).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := PortfolioRepository{DB: db}.Create(context.Background(), models.PortfolioInput{
		Title: "Reel", Description: "Brand film", Category: "commercial", Date: "2025-06-01",
		Tags: models.TagList{"brand", "4k"}, Featured: true, Status: "draft",
	})
	if err != nil || id != 5 {
		t.Fatalf("Create = %d, %v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeedbackStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("AVG\\(rating\\)").WillReturnRows(
		sqlmock.NewRows([]string{"n", "avg", "p", "a", "r"}).AddRow(4, 4.25, 1, 2, 1))

	s, err := FeedbackRepository{DB: db}.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.TotalFeedback != 4 || s.AverageRating != 4.25 || s.ApprovedCount != 2 {
		t.Fatalf("unexpected stats %#v", s)
	}
}

func TestContentUpsertRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO site_content").WithArgs("hero_headline", "Hello").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO site_content").WithArgs("contact_phone", "").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = ContentRepository{DB: db}.Upsert(context.Background(),
		map[string]string{"hero_headline": "Hello", "contact_phone": ""},
		models.ContentKeys)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
