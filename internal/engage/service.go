package engage

import (
	"context"
	"errors"

	"backend-parishlive/internal/db"
)

// EdgeType names an engagement relation. The row's existence is the state;
// no separate boolean is stored.
type EdgeType string

const (
	EdgeLike EdgeType = "like"
	EdgeSave EdgeType = "save"
)

var ErrUnknownEdge = errors.New("unknown engagement edge type")

// Table names are resolved through this map only, never from caller input.
var edgeTables = map[EdgeType]string{
	EdgeLike: "feed_likes",
	EdgeSave: "feed_saves",
}

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Toggle flips an engagement edge: delete it if present, insert it if absent,
// and report the resulting state. This is a check-then-act sequence; a race
// between two in-flight toggles is best-effort. The post's cached counters
// are never touched here; the store maintains them.
func (s *Service) Toggle(ctx context.Context, edge EdgeType, postID, userID string) (bool, error) {
	table, ok := edgeTables[edge]
	if !ok {
		return false, ErrUnknownEdge
	}

	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM `+table+` WHERE post_id=$1 AND user_id=$2)
	`, postID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}

	if exists {
		_, err := s.db.Exec(ctx, `DELETE FROM `+table+` WHERE post_id=$1 AND user_id=$2`, postID, userID)
		if err != nil {
			return false, err
		}
		return false, nil
	}

	_, err = s.db.Exec(ctx, `INSERT INTO `+table+` (post_id, user_id) VALUES ($1,$2)`, postID, userID)
	if err != nil {
		return false, err
	}
	return true, nil
}
