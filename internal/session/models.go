package session

import (
	"encoding/json"
	"time"
)

const (
	TypeMass    = "mass"
	TypeLive    = "live"
	TypeMeeting = "meeting"
	TypeOther   = "other"
)

// Session is an ephemeral geofenced parish gathering. Sessions are never
// deleted, only deactivated, so historical records survive.
type Session struct {
	ID            string          `json:"id"`
	Code          string          `json:"session_code"`
	Title         string          `json:"title"`
	Type          string          `json:"session_type"`
	Lat           float64         `json:"latitude"`
	Lng           float64         `json:"longitude"`
	RadiusM       float64         `json:"radius"`
	ParishID      string          `json:"parish_id"`
	ParishName    string          `json:"parish_name,omitempty"`
	LocalChurchID string          `json:"local_church_id"`
	CreatedBy     string          `json:"created_by"`
	StartTime     time.Time       `json:"start_time,omitempty"`
	EndTime       time.Time       `json:"end_time,omitempty"`
	IsActive      bool            `json:"is_active"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
