package feed

// Pager owns one screen's pagination state: tier, offset, accumulated posts.
// It is mutated only by completed fetches and explicit tier switches, and it
// discards responses whose request no longer matches the current state. Not
// safe for concurrent use; a single viewing context owns it.
type Pager struct {
	limit   int
	tier    Tier
	offset  int
	hasMore bool
	posts   []Post
}

func NewPager(tier Tier, limit int) *Pager {
	return &Pager{limit: limit, tier: tier, hasMore: true, posts: []Post{}}
}

// SetTier switches scope. Pagination always restarts: offset back to zero and
// the accumulated list cleared before the next fetch.
func (p *Pager) SetTier(tier Tier) {
	if tier == p.tier {
		return
	}
	p.tier = tier
	p.offset = 0
	p.hasMore = true
	p.posts = []Post{}
}

// NextRequest yields the arguments for the next page fetch, or ok=false when
// the last page has been seen.
func (p *Pager) NextRequest() (tier Tier, limit, offset int, ok bool) {
	if !p.hasMore {
		return p.tier, p.limit, p.offset, false
	}
	return p.tier, p.limit, p.offset, true
}

// Apply merges a completed page. A response for a different tier or offset
// than currently expected is stale and discarded, reported by the return
// value. A short page (len < limit) marks the end of the feed.
func (p *Pager) Apply(tier Tier, offset int, page []Post) bool {
	if tier != p.tier || offset != p.offset {
		return false
	}
	p.posts = append(p.posts, page...)
	p.offset += len(page)
	p.hasMore = len(page) == p.limit
	return true
}

func (p *Pager) Posts() []Post { return p.posts }

func (p *Pager) HasMore() bool { return p.hasMore }

func (p *Pager) Tier() Tier { return p.tier }
