package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

var errQuery = errors.New("query error")

func TestCreateReport(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO feed_reports`).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	svc := NewService(mock)
	report, err := svc.CreateReport(context.Background(), Report{
		PostID: "post-1", ReporterID: "user-1", ReporterName: "Maria", Reason: "spam",
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if report.ID == "" || !report.CreatedAt.Equal(now) {
		t.Fatalf("report not filled in: %+v", report)
	}
}

func TestPendingKeepsReportWhenPostGone(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM feed_reports`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "post_id", "reporter_id", "reporter_name", "reason", "created_at"}).
			AddRow("rep-1", "post-1", "user-1", "Maria", "spam", now).
			AddRow("rep-2", "post-gone", "user-2", "Yusuf", "abuse", now))

	mock.ExpectQuery(`FROM feed_posts`).
		WithArgs("post-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "author_name", "content", "tier"}).
			AddRow("post-1", "Andi", "hello", "local"))
	mock.ExpectQuery(`FROM feed_posts`).
		WithArgs("post-gone").
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock)
	pending, err := svc.Pending(context.Background())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected both reports listed, got %d", len(pending))
	}
	if pending[0].Post == nil || pending[0].Post.AuthorName != "Andi" {
		t.Fatalf("first report should carry its post preview: %+v", pending[0])
	}
	if pending[1].Post != nil {
		t.Fatalf("vanished post must leave a nil preview, got %+v", pending[1].Post)
	}
}

func TestDismissDeletesSingleReport(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM feed_reports WHERE id`).
		WithArgs("rep-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := NewService(mock)
	if err := svc.Dismiss(context.Background(), "rep-1"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteReportedPostCascade(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	// Post goes first, then its reports.
	mock.ExpectExec(`DELETE FROM feed_posts`).
		WithArgs("post-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM feed_reports WHERE post_id`).
		WithArgs("post-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	svc := NewService(mock)
	if err := svc.DeleteReportedPost(context.Background(), "post-1"); err != nil {
		t.Fatalf("cascade: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteReportedPostAbortsOnPostFailure(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM feed_posts`).
		WithArgs("post-1").
		WillReturnError(errQuery)

	svc := NewService(mock)
	if err := svc.DeleteReportedPost(context.Background(), "post-1"); !errors.Is(err, errQuery) {
		t.Fatalf("expected post delete error, got %v", err)
	}
	// The reports delete must never have run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteReportedPostMissingPost(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	// Already gone: zero rows affected is fine, stale reports still cleared.
	mock.ExpectExec(`DELETE FROM feed_posts`).
		WithArgs("post-gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM feed_reports WHERE post_id`).
		WithArgs("post-gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := NewService(mock)
	if err := svc.DeleteReportedPost(context.Background(), "post-gone"); err != nil {
		t.Fatalf("missing post must be benign: %v", err)
	}
}
