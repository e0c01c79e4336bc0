package moderation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"backend-parishlive/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) CreateReport(ctx context.Context, input Report) (Report, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO feed_reports (id, post_id, reporter_id, reporter_name, reason)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, input.ID, input.PostID, input.ReporterID, input.ReporterName, input.Reason)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Report{}, err
	}
	return input, nil
}

// Pending lists open reports, newest first, each with a preview of the post
// it targets. A report whose post has since disappeared is still listed so
// the admin can dismiss it; its preview is nil.
func (s *Service) Pending(ctx context.Context) ([]PendingReport, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, reporter_id, reporter_name, reason, created_at
		FROM feed_reports
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingReport
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.PostID, &r.ReporterID, &r.ReporterName, &r.Reason, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, PendingReport{Report: r})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		post, err := s.reportedPost(ctx, out[i].Report.PostID)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[i].Post = &post
	}
	return out, nil
}

func (s *Service) reportedPost(ctx context.Context, postID string) (ReportedPost, error) {
	var p ReportedPost
	err := s.db.QueryRow(ctx, `
		SELECT id, author_name, content, tier
		FROM feed_posts WHERE id=$1
	`, postID).Scan(&p.ID, &p.AuthorName, &p.Content, &p.Tier)
	return p, err
}

// Dismiss clears a single report and leaves the post alone.
func (s *Service) Dismiss(ctx context.Context, reportID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM feed_reports WHERE id=$1`, reportID)
	return err
}

// DeleteReportedPost removes the post first, then every report filed against
// it. If the post delete fails the reports are left untouched so the queue
// still shows them. A post that is already gone is not an error; the stale
// reports are still cleared.
func (s *Service) DeleteReportedPost(ctx context.Context, postID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM feed_posts WHERE id=$1`, postID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM feed_reports WHERE post_id=$1`, postID)
	return err
}
