package models

type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"` // unique in practice, not enforced
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Password  string `json:"password,omitempty"` // bcrypt hash
	CreatedAt string `json:"createdAt,omitempty"`
}

func (u User) RecordID() int64 { return u.ID }

func (u User) WithID(id int64) User {
	u.ID = id
	return u
}
