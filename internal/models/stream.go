package models

// StreamTitle is a catalog entry of the streaming section.
type StreamTitle struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Duration    string  `json:"duration"`
	Rating      float64 `json:"rating"`
	Poster      string  `json:"poster"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

func (s StreamTitle) RecordID() int64 { return s.ID }

func (s StreamTitle) WithID(id int64) StreamTitle {
	s.ID = id
	return s
}
