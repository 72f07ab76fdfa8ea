package models

// CastMember is one ordered entry of a movie's cast list.
type CastMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
}

type Movie struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Genre       string       `json:"genre"`
	Duration    string       `json:"duration"`
	Rating      float64      `json:"rating"`
	Price       int64        `json:"price"`
	Poster      string       `json:"poster"`
	Backdrop    string       `json:"backdrop,omitempty"`
	Director    string       `json:"director,omitempty"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	ReleaseDate string       `json:"releaseDate"`
	Cast        []CastMember `json:"cast,omitempty"`
}

func (m Movie) RecordID() int64 { return m.ID }

func (m Movie) WithID(id int64) Movie {
	m.ID = id
	return m
}
