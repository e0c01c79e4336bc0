package feed

import "time"

// Tier selects one of three independent feed scopes. Tiers are separate
// queries, not filters on a shared one.
type Tier string

const (
	TierLocal       Tier = "local"
	TierArchdiocese Tier = "archdiocese"
	TierNational    Tier = "national"
)

func ValidTier(t Tier) bool {
	switch t {
	case TierLocal, TierArchdiocese, TierNational:
		return true
	}
	return false
}

const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

type Post struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	ParishID      string    `json:"parish_id"`
	ParishName    string    `json:"parish_name,omitempty"`
	ArchdioceseID string    `json:"archdiocese_id,omitempty"`
	Content       string    `json:"content"`
	Tier          Tier      `json:"tier"`
	PostType      string    `json:"post_type"`
	LikeCount     int       `json:"like_count"`
	CommentCount  int       `json:"comment_count"`
	ShareCount    int       `json:"share_count"`
	IsPinned      bool      `json:"is_pinned"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserHasLiked  bool      `json:"user_has_liked"`
	UserHasSaved  bool      `json:"user_has_saved"`
	Media         []Media   `json:"media"`
}

// Media is an ordered post attachment. Photos are ordered by OrderIndex,
// 0-based and contiguous per post; a post carries at most one video.
type Media struct {
	ID          string    `json:"id"`
	PostID      string    `json:"post_id"`
	MediaType   string    `json:"media_type"`
	URL         string    `json:"url"`
	OrderIndex  int       `json:"order_index"`
	DurationSec int       `json:"duration_seconds,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
