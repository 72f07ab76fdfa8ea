package models

type Event struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Price       int64  `json:"price"`
	Poster      string `json:"poster"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (e Event) RecordID() int64 { return e.ID }

func (e Event) WithID(id int64) Event {
	e.ID = id
	return e
}
