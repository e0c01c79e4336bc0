package parish

import (
	"context"

	"github.com/google/uuid"

	"backend-parishlive/internal/db"
	"backend-parishlive/internal/shared/geo"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) Create(ctx context.Context, input Parish) (Parish, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO parishes (id, name, archdiocese_id, address, latitude, longitude, radius)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.Name, input.ArchdioceseID, input.Address, input.Lat, input.Lng, input.RadiusM)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Parish{}, err
	}
	return input, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Parish) (Parish, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Parish{}, err
	}
	if patch.Name != "" {
		p.Name = patch.Name
	}
	if patch.ArchdioceseID != "" {
		p.ArchdioceseID = patch.ArchdioceseID
	}
	if patch.Address != "" {
		p.Address = patch.Address
	}
	if patch.Lat != 0 {
		p.Lat = patch.Lat
	}
	if patch.Lng != 0 {
		p.Lng = patch.Lng
	}
	if patch.RadiusM != 0 {
		p.RadiusM = patch.RadiusM
	}

	_, err = s.db.Exec(ctx, `
		UPDATE parishes
		SET name=$2, archdiocese_id=$3, address=$4, latitude=$5, longitude=$6, radius=$7
		WHERE id=$1
	`, p.ID, p.Name, p.ArchdioceseID, p.Address, p.Lat, p.Lng, p.RadiusM)
	if err != nil {
		return Parish{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (Parish, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, archdiocese_id, address, latitude, longitude, radius, created_at
		FROM parishes WHERE id=$1
	`, id)
	var p Parish
	if err := row.Scan(&p.ID, &p.Name, &p.ArchdioceseID, &p.Address, &p.Lat, &p.Lng, &p.RadiusM, &p.CreatedAt); err != nil {
		return Parish{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Parish, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, archdiocese_id, address, latitude, longitude, radius, created_at
		FROM parishes
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parishes []Parish
	for rows.Next() {
		var p Parish
		if err := rows.Scan(&p.ID, &p.Name, &p.ArchdioceseID, &p.Address, &p.Lat, &p.Lng, &p.RadiusM, &p.CreatedAt); err != nil {
			return nil, err
		}
		parishes = append(parishes, p)
	}
	return parishes, rows.Err()
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM parishes WHERE id=$1`, id)
	return err
}

// Locate finds the parish whose circle contains the point. Parishes without
// coordinates or a radius never match.
func (s *Service) Locate(ctx context.Context, p geo.Point) (Parish, bool, error) {
	parishes, err := s.List(ctx)
	if err != nil {
		return Parish{}, false, err
	}
	region, ok := geo.FindContaining(p, Regions(parishes))
	if !ok {
		return Parish{}, false, nil
	}
	for _, parish := range parishes {
		if parish.ID == region.ID {
			return parish, true, nil
		}
	}
	return Parish{}, false, nil
}

// Regions projects parishes onto the geofence matcher's region shape.
func Regions(parishes []Parish) []geo.Region {
	regions := make([]geo.Region, 0, len(parishes))
	for _, p := range parishes {
		regions = append(regions, geo.Region{
			ID:      p.ID,
			Name:    p.Name,
			Lat:     p.Lat,
			Lng:     p.Lng,
			RadiusM: p.RadiusM,
		})
	}
	return regions
}

func (s *Service) AddMember(ctx context.Context, parishID, userID, role string) (Member, error) {
	if role == "" {
		role = RoleMember
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO parish_members (parish_id, user_id, role)
		VALUES ($1,$2,$3)
		ON CONFLICT (parish_id, user_id) DO UPDATE SET role=EXCLUDED.role
		RETURNING joined_at
	`, parishID, userID, role)
	member := Member{ParishID: parishID, UserID: userID, Role: role}
	if err := row.Scan(&member.JoinedAt); err != nil {
		return Member{}, err
	}
	return member, nil
}

func (s *Service) Members(ctx context.Context, parishID string) ([]Member, error) {
	rows, err := s.db.Query(ctx, `
		SELECT parish_id, user_id, role, joined_at
		FROM parish_members WHERE parish_id=$1
		ORDER BY joined_at
	`, parishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ParishID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
