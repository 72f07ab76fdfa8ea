package models

type SportMatch struct {
	ID        int64  `json:"id"`
	Team1     string `json:"team1"`
	Team2     string `json:"team2"`
	SportType string `json:"sportType"`
	League    string `json:"league"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Venue     string `json:"venue"`
	Price     int64  `json:"price"`
	Status    string `json:"status"`
}

func (m SportMatch) RecordID() int64 { return m.ID }

func (m SportMatch) WithID(id int64) SportMatch {
	m.ID = id
	return m
}
