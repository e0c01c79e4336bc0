package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend-parishlive/internal/db"
	"backend-parishlive/internal/shared/geo"

	"github.com/google/uuid"
)

const defaultRadiusM = 500

// ErrConflict is a designed rejection, not a fault: the candidate center sits
// inside an already-active session's circle.
var ErrConflict = errors.New("session already active in this area")

type Service struct {
	db      db.Querier
	radiusM float64
}

func NewService(q db.Querier, radiusM float64) *Service {
	if radiusM <= 0 {
		radiusM = defaultRadiusM
	}
	return &Service{db: q, radiusM: radiusM}
}

const activeColumns = `s.id, s.session_code, COALESCE(s.title,''), COALESCE(s.session_type,'other'),
		       s.latitude, s.longitude, s.radius, s.parish_id, COALESCE(p.parish_name,''),
		       s.local_church_id, s.created_by, s.is_active, s.created_at`

// Active returns every currently active session joined with its parish name.
// Callers re-fetch on every use; sessions activate and deactivate at any time.
func (s *Service) Active(ctx context.Context) ([]Session, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+activeColumns+`
		FROM sessions s
		LEFT JOIN parishes p ON p.id = s.parish_id
		WHERE s.is_active = true
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Code, &sess.Title, &sess.Type, &sess.Lat, &sess.Lng,
			&sess.RadiusM, &sess.ParishID, &sess.ParishName, &sess.LocalChurchID,
			&sess.CreatedBy, &sess.IsActive, &sess.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// Create inserts a new session after the conflict check: if any active
// session's circle already contains the candidate center, creation is
// rejected with ErrConflict. The check is point-in-region, not full circle
// intersection, and runs only at creation time.
func (s *Service) Create(ctx context.Context, input Session) (Session, error) {
	if input.RadiusM <= 0 {
		input.RadiusM = s.radiusM
	}
	if input.Type == "" {
		input.Type = TypeOther
	}

	active, err := s.Active(ctx)
	if err != nil {
		return Session{}, err
	}
	if _, ok := geo.FindContaining(geo.Point{Lat: input.Lat, Lng: input.Lng}, Regions(active)); ok {
		return Session{}, ErrConflict
	}

	input.ID = uuid.NewString()
	if input.Code == "" {
		input.Code = newCode()
	}
	input.IsActive = true

	row := s.db.QueryRow(ctx, `
		INSERT INTO sessions (id, session_code, title, session_type, latitude, longitude, radius,
		                      parish_id, local_church_id, created_by, start_time, end_time, is_active, metadata)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at
	`, input.ID, input.Code, input.Title, input.Type, input.Lat, input.Lng, input.RadiusM,
		input.ParishID, input.LocalChurchID, input.CreatedBy,
		timePtr(input.StartTime), timePtr(input.EndTime), input.IsActive, input.Metadata)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Session{}, err
	}
	return input, nil
}

// SetActive flips a session's active flag. Sessions are never deleted.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	_, err := s.db.Exec(ctx, `UPDATE sessions SET is_active=$2 WHERE id=$1`, id, active)
	return err
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+activeColumns+`
		FROM sessions s
		LEFT JOIN parishes p ON p.id = s.parish_id
		WHERE s.id = $1
	`, id)
	var sess Session
	if err := row.Scan(&sess.ID, &sess.Code, &sess.Title, &sess.Type, &sess.Lat, &sess.Lng,
		&sess.RadiusM, &sess.ParishID, &sess.ParishName, &sess.LocalChurchID,
		&sess.CreatedBy, &sess.IsActive, &sess.CreatedAt); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Nearby re-fetches active sessions and returns the first whose circle
// contains p, if any.
func (s *Service) Nearby(ctx context.Context, p geo.Point) (Session, bool, error) {
	active, err := s.Active(ctx)
	if err != nil {
		return Session{}, false, err
	}
	r, ok := geo.FindContaining(p, Regions(active))
	if !ok {
		return Session{}, false, nil
	}
	for _, sess := range active {
		if sess.ID == r.ID {
			return sess, true, nil
		}
	}
	return Session{}, false, nil
}

// Regions converts sessions to geofence regions for the matcher.
func Regions(sessions []Session) []geo.Region {
	regions := make([]geo.Region, 0, len(sessions))
	for _, s := range sessions {
		regions = append(regions, geo.Region{
			ID:      s.ID,
			Name:    s.ParishName,
			Lat:     s.Lat,
			Lng:     s.Lng,
			RadiusM: s.RadiusM,
		})
	}
	return regions
}

func newCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
