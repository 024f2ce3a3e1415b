package models

import "time"

// User mirrors an identity-provider account; ID is assigned externally.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Image     string    `bson:"image" json:"image"`
	Resume    string    `bson:"resume" json:"resume"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (u User) HasResume() bool { return u.Resume != "" }
