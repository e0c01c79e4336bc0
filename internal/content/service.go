package content

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"backend-parishlive/internal/db"
)

var ErrUnknownType = errors.New("unknown content type")

type Service struct {
	db db.Querier

	// One fetcher per content kind; lookups go through this table only.
	fetchers map[Type]func(ctx context.Context, bundle *Bundle, ids []string) error
}

func NewService(q db.Querier) *Service {
	s := &Service{db: q}
	s.fetchers = map[Type]func(ctx context.Context, bundle *Bundle, ids []string) error{
		TypeReading: s.fetchReadings,
		TypeSong:    s.fetchSongs,
		TypePrayer:  s.fetchPrayers,
	}
	return s
}

// ForSession assembles the content bundle for one session. The mapping table
// decides both membership and position; kinds the session has no rows for
// come back as empty slices.
func (s *Service) ForSession(ctx context.Context, sessionID string) (Bundle, error) {
	bundle := Bundle{
		Readings: make([]Reading, 0),
		Songs:    make([]Song, 0),
		Prayers:  make([]Prayer, 0),
	}

	rows, err := s.db.Query(ctx, `
		SELECT content_type, content_id
		FROM session_content_mappings
		WHERE session_id=$1
		ORDER BY position
	`, sessionID)
	if err != nil {
		return Bundle{}, err
	}
	defer rows.Close()

	byType := map[Type][]string{}
	var order []Type
	for rows.Next() {
		var t Type
		var id string
		if err := rows.Scan(&t, &id); err != nil {
			return Bundle{}, err
		}
		if _, seen := byType[t]; !seen {
			order = append(order, t)
		}
		byType[t] = append(byType[t], id)
	}
	if err := rows.Err(); err != nil {
		return Bundle{}, err
	}

	for _, t := range order {
		fetch, ok := s.fetchers[t]
		if !ok {
			// A stray row with an unrecognized kind must not sink the whole
			// bundle.
			continue
		}
		if err := fetch(ctx, &bundle, byType[t]); err != nil {
			return Bundle{}, err
		}
	}
	return bundle, nil
}

func (s *Service) fetchReadings(ctx context.Context, bundle *Bundle, ids []string) error {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, citation, body, created_at
		FROM readings WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := map[string]Reading{}
	for rows.Next() {
		var r Reading
		if err := rows.Scan(&r.ID, &r.Title, &r.Citation, &r.Body, &r.CreatedAt); err != nil {
			return err
		}
		found[r.ID] = r
	}
	for _, id := range ids {
		if r, ok := found[id]; ok {
			bundle.Readings = append(bundle.Readings, r)
		}
	}
	return rows.Err()
}

func (s *Service) fetchSongs(ctx context.Context, bundle *Bundle, ids []string) error {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, composer, lyrics, created_at
		FROM songs WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := map[string]Song{}
	for rows.Next() {
		var sg Song
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Composer, &sg.Lyrics, &sg.CreatedAt); err != nil {
			return err
		}
		found[sg.ID] = sg
	}
	for _, id := range ids {
		if sg, ok := found[id]; ok {
			bundle.Songs = append(bundle.Songs, sg)
		}
	}
	return rows.Err()
}

func (s *Service) fetchPrayers(ctx context.Context, bundle *Bundle, ids []string) error {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, body, created_at
		FROM prayers WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := map[string]Prayer{}
	for rows.Next() {
		var p Prayer
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return err
		}
		found[p.ID] = p
	}
	for _, id := range ids {
		if p, ok := found[id]; ok {
			bundle.Prayers = append(bundle.Prayers, p)
		}
	}
	return rows.Err()
}

func (s *Service) CreateReading(ctx context.Context, input Reading) (Reading, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO readings (id, title, citation, body)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.Title, input.Citation, input.Body)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Reading{}, err
	}
	return input, nil
}

func (s *Service) CreateSong(ctx context.Context, input Song) (Song, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO songs (id, title, composer, lyrics)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.Title, input.Composer, input.Lyrics)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Song{}, err
	}
	return input, nil
}

func (s *Service) CreatePrayer(ctx context.Context, input Prayer) (Prayer, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO prayers (id, title, body)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, input.ID, input.Title, input.Body)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Prayer{}, err
	}
	return input, nil
}

// AddMapping attaches a content item to a session at the next position.
func (s *Service) AddMapping(ctx context.Context, m Mapping) (Mapping, error) {
	if _, ok := s.fetchers[m.ContentType]; !ok {
		return Mapping{}, ErrUnknownType
	}
	err := s.db.QueryRow(ctx, `
		INSERT INTO session_content_mappings (session_id, content_type, content_id, position)
		VALUES ($1,$2,$3, (
			SELECT COALESCE(MAX(position),-1)+1
			FROM session_content_mappings WHERE session_id=$1
		))
		RETURNING position
	`, m.SessionID, m.ContentType, m.ContentID).Scan(&m.Position)
	if err != nil {
		return Mapping{}, err
	}
	return m, nil
}

func (s *Service) RemoveMapping(ctx context.Context, sessionID string, t Type, contentID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM session_content_mappings
		WHERE session_id=$1 AND content_type=$2 AND content_id=$3
	`, sessionID, t, contentID)
	return err
}
