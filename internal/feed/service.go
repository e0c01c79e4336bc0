package feed

import (
	"context"
	"errors"
	"time"

	"backend-parishlive/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUnknownTier = errors.New("unknown feed tier")
	ErrVideoLimit  = errors.New("post already has a video attachment")
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

const postColumns = `p.id, p.author_id, COALESCE(u.full_name,''), p.parish_id, COALESCE(pa.parish_name,''),
	       COALESCE(p.archdiocese_id::text,''), p.content, p.tier, COALESCE(p.post_type,'general'),
	       p.like_count, p.comment_count, p.share_count, p.is_pinned, p.created_at, p.updated_at,
	       EXISTS(SELECT 1 FROM feed_likes l WHERE l.post_id = p.id AND l.user_id = $1),
	       EXISTS(SELECT 1 FROM feed_saves sv WHERE sv.post_id = p.id AND sv.user_id = $1)`

const postJoins = `FROM feed_posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN parishes pa ON pa.id = p.parish_id`

// Fetch returns one page of the requested tier, newest first. Each tier is
// its own query against its own scope. Media is loaded as a second pass per
// post; any error aborts the whole page so a retry with the same arguments is
// a clean idempotent read.
func (s *Service) Fetch(ctx context.Context, tier Tier, userID string, limit, offset int) ([]Post, error) {
	var rows pgx.Rows
	var err error

	switch tier {
	case TierLocal:
		// The local tier orders pinned-first at the source; the other tiers
		// leave pin promotion to the display layer.
		rows, err = s.db.Query(ctx, `
			SELECT `+postColumns+`
			`+postJoins+`
			WHERE p.tier = 'local'
			  AND p.parish_id = (SELECT parish_id FROM users WHERE id = $1)
			ORDER BY p.is_pinned DESC, p.created_at DESC
			LIMIT $2 OFFSET $3
		`, userID, limit, offset)
	case TierArchdiocese:
		rows, err = s.db.Query(ctx, `
			SELECT `+postColumns+`
			`+postJoins+`
			WHERE p.tier = 'archdiocese'
			  AND p.archdiocese_id = (SELECT archdiocese_id FROM users WHERE id = $1)
			ORDER BY p.created_at DESC
			LIMIT $2 OFFSET $3
		`, userID, limit, offset)
	case TierNational:
		rows, err = s.db.Query(ctx, `
			SELECT `+postColumns+`
			`+postJoins+`
			WHERE p.tier = 'national'
			ORDER BY p.created_at DESC
			LIMIT $2 OFFSET $3
		`, userID, limit, offset)
	default:
		return nil, ErrUnknownTier
	}
	if err != nil {
		return nil, err
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		media, err := s.MediaForPost(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Media = media
	}
	return posts, nil
}

// MediaForPost returns a post's attachments ordered by order_index. A post
// without attachments gets an empty list, never nil.
func (s *Service) MediaForPost(ctx context.Context, postID string) ([]Media, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, media_type, url, order_index, COALESCE(duration_seconds,0), created_at
		FROM feed_media
		WHERE post_id = $1
		ORDER BY order_index
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := make([]Media, 0)
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.PostID, &m.MediaType, &m.URL, &m.OrderIndex, &m.DurationSec, &m.CreatedAt); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, nil
}

// CreatePost inserts a post. Tier is immutable after creation.
func (s *Service) CreatePost(ctx context.Context, input Post) (Post, error) {
	if !ValidTier(input.Tier) {
		return Post{}, ErrUnknownTier
	}
	if input.PostType == "" {
		input.PostType = "general"
	}
	input.ID = uuid.NewString()
	input.Media = []Media{}

	row := s.db.QueryRow(ctx, `
		INSERT INTO feed_posts (id, author_id, parish_id, archdiocese_id, content, tier, post_type)
		VALUES ($1,$2,$3,NULLIF($4,''),$5,$6,$7)
		RETURNING created_at, updated_at
	`, input.ID, input.AuthorID, input.ParishID, input.ArchdioceseID, input.Content, input.Tier, input.PostType)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Post{}, err
	}
	return input, nil
}

// AddMedia appends an attachment to a post. The order index continues the
// post's existing sequence; a second video is rejected.
func (s *Service) AddMedia(ctx context.Context, postID, mediaType, url string, durationSec int) (Media, error) {
	if mediaType == MediaVideo {
		var videos int
		if err := s.db.QueryRow(ctx, `
			SELECT COUNT(*) FROM feed_media WHERE post_id = $1 AND media_type = 'video'
		`, postID).Scan(&videos); err != nil {
			return Media{}, err
		}
		if videos > 0 {
			return Media{}, ErrVideoLimit
		}
	}

	var next int
	if err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM feed_media WHERE post_id = $1
	`, postID).Scan(&next); err != nil {
		return Media{}, err
	}

	m := Media{
		ID:          uuid.NewString(),
		PostID:      postID,
		MediaType:   mediaType,
		URL:         url,
		OrderIndex:  next,
		DurationSec: durationSec,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO feed_media (id, post_id, media_type, url, order_index, duration_seconds)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,0))
		RETURNING created_at
	`, m.ID, m.PostID, m.MediaType, m.URL, m.OrderIndex, m.DurationSec)
	if err := row.Scan(&m.CreatedAt); err != nil {
		return Media{}, err
	}
	return m, nil
}

// SavedPosts lists the user's saved posts, newest save first.
func (s *Service) SavedPosts(ctx context.Context, userID string, limit, offset int) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM feed_saves fs
		JOIN feed_posts p ON p.id = fs.post_id
		JOIN users u ON u.id = p.author_id
		LEFT JOIN parishes pa ON pa.id = p.parish_id
		WHERE fs.user_id = $1
		ORDER BY fs.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		media, err := s.MediaForPost(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Media = media
	}
	return posts, nil
}

// Pin marks a post pinned by an admin; Unpin reverses it.
func (s *Service) Pin(ctx context.Context, postID, userID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE feed_posts SET is_pinned=true, pinned_at=$2, pinned_by=$3 WHERE id=$1
	`, postID, time.Now(), userID)
	return err
}

func (s *Service) Unpin(ctx context.Context, postID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE feed_posts SET is_pinned=false, pinned_at=NULL, pinned_by=NULL WHERE id=$1
	`, postID)
	return err
}

// Delete removes a post. Media rows cascade at the store.
func (s *Service) Delete(ctx context.Context, postID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM feed_posts WHERE id=$1`, postID)
	return err
}

func scanPosts(rows pgx.Rows) ([]Post, error) {
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.ParishID, &p.ParishName,
			&p.ArchdioceseID, &p.Content, &p.Tier, &p.PostType,
			&p.LikeCount, &p.CommentCount, &p.ShareCount, &p.IsPinned,
			&p.CreatedAt, &p.UpdatedAt, &p.UserHasLiked, &p.UserHasSaved); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
