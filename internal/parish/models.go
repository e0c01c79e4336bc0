package parish

import "time"

type Parish struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ArchdioceseID string    `json:"archdiocese_id"`
	Address       string    `json:"address"`
	Lat           float64   `json:"latitude"`
	Lng           float64   `json:"longitude"`
	RadiusM       float64   `json:"radius"`
	CreatedAt     time.Time `json:"created_at"`
}

type Member struct {
	ParishID string    `json:"parish_id"`
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

const (
	RoleMember      = "member"
	RoleJuniorAdmin = "junior_admin"
	RoleAdmin       = "admin"
)
