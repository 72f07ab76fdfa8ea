package models

type Showtime struct {
	Time   string `json:"time"`
	Price  int64  `json:"price"`
	Screen string `json:"screen"`
}

type Theater struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Distance  string     `json:"distance"`
	Screens   []string   `json:"screens"`
	Showtimes []Showtime `json:"showtimes"`
}

func (t Theater) RecordID() int64 { return t.ID }

func (t Theater) WithID(id int64) Theater {
	t.ID = id
	return t
}
