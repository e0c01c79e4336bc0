package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

var errQuery = errors.New("query error")

func TestForSessionGroupsByKind(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM session_content_mappings`).
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows([]string{"content_type", "content_id"}).
			AddRow("reading", "r-1").
			AddRow("song", "s-1").
			AddRow("reading", "r-2"))

	mock.ExpectQuery(`FROM readings`).
		WithArgs([]string{"r-1", "r-2"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "citation", "body", "created_at"}).
			AddRow("r-2", "Second Reading", "Rom 12:1-2", "...", now).
			AddRow("r-1", "First Reading", "Gen 1:1", "...", now))
	mock.ExpectQuery(`FROM songs`).
		WithArgs([]string{"s-1"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "composer", "lyrics", "created_at"}).
			AddRow("s-1", "Entrance Hymn", "anon", "...", now))

	svc := NewService(mock)
	bundle, err := svc.ForSession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if len(bundle.Readings) != 2 || bundle.Readings[0].ID != "r-1" || bundle.Readings[1].ID != "r-2" {
		t.Fatalf("readings must follow mapping position, got %+v", bundle.Readings)
	}
	if len(bundle.Songs) != 1 || bundle.Songs[0].Title != "Entrance Hymn" {
		t.Fatalf("songs: %+v", bundle.Songs)
	}
	if bundle.Prayers == nil || len(bundle.Prayers) != 0 {
		t.Fatalf("absent kind must be an empty slice, got %v", bundle.Prayers)
	}
}

func TestForSessionSkipsUnknownKind(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM session_content_mappings`).
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows([]string{"content_type", "content_id"}).
			AddRow("announcement", "a-1"))

	svc := NewService(mock)
	bundle, err := svc.ForSession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unknown kind must not fail the bundle: %v", err)
	}
	if len(bundle.Readings)+len(bundle.Songs)+len(bundle.Prayers) != 0 {
		t.Fatalf("expected empty bundle, got %+v", bundle)
	}
}

func TestForSessionFetchErrorAborts(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM session_content_mappings`).
		WithArgs("sess-1").
		WillReturnRows(pgxmock.NewRows([]string{"content_type", "content_id"}).
			AddRow("prayer", "p-1"))
	mock.ExpectQuery(`FROM prayers`).
		WithArgs([]string{"p-1"}).
		WillReturnError(errQuery)

	svc := NewService(mock)
	if _, err := svc.ForSession(context.Background(), "sess-1"); !errors.Is(err, errQuery) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestCreateReading(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO readings`).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	r, err := svc.CreateReading(context.Background(), Reading{Title: "Gospel", Citation: "Jn 3:16", Body: "..."})
	if err != nil || r.ID == "" {
		t.Fatalf("create reading: %+v %v", r, err)
	}
}

func TestAddMappingAssignsNextPosition(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO session_content_mappings`).
		WithArgs("sess-1", TypeSong, "s-1").
		WillReturnRows(pgxmock.NewRows([]string{"position"}).AddRow(2))

	svc := NewService(mock)
	m, err := svc.AddMapping(context.Background(), Mapping{SessionID: "sess-1", ContentType: TypeSong, ContentID: "s-1"})
	if err != nil {
		t.Fatalf("add mapping: %v", err)
	}
	if m.Position != 2 {
		t.Fatalf("expected position 2, got %d", m.Position)
	}
}

func TestAddMappingRejectsUnknownType(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.AddMapping(context.Background(), Mapping{SessionID: "sess-1", ContentType: Type("homily"), ContentID: "x"})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}
