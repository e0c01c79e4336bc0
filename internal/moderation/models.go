package moderation

import "time"

type Report struct {
	ID           string    `json:"id"`
	PostID       string    `json:"post_id"`
	ReporterID   string    `json:"reporter_id"`
	ReporterName string    `json:"reporter_name"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReportedPost is the preview shown alongside a pending report. Kept minimal
// on purpose; the full post lives in the feed tables.
type ReportedPost struct {
	ID         string `json:"id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	Tier       string `json:"tier"`
}

// PendingReport pairs a report with its post preview. Post is nil when the
// post was removed after the report was filed.
type PendingReport struct {
	Report Report        `json:"report"`
	Post   *ReportedPost `json:"post,omitempty"`
}
