package content

import "time"

type Type string

const (
	TypeReading Type = "reading"
	TypeSong    Type = "song"
	TypePrayer  Type = "prayer"
)

type Reading struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Citation  string    `json:"citation"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Composer  string    `json:"composer"`
	Lyrics    string    `json:"lyrics"`
	CreatedAt time.Time `json:"created_at"`
}

type Prayer struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Bundle is everything attached to one session, grouped by kind and ordered
// by the mapping's position. Slices are never nil so clients always see
// arrays.
type Bundle struct {
	Readings []Reading `json:"readings"`
	Songs    []Song    `json:"songs"`
	Prayers  []Prayer  `json:"prayers"`
}

type Mapping struct {
	SessionID   string `json:"session_id"`
	ContentType Type   `json:"content_type"`
	ContentID   string `json:"content_id"`
	Position    int    `json:"position"`
}
