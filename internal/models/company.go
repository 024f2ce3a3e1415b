package models

import "time"

type Company struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"` // armazenado normalizado (lowercase)
	PasswordHash string    `bson:"password" json:"-"`
	Image        string    `bson:"image" json:"image"`
	Deleted      bool      `bson:"deleted" json:"deleted"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Public returns the fields safe to embed in listings of other resources.
func (c Company) Public() CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name, Email: c.Email, Image: c.Image}
}

type CompanySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}
