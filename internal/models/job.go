package models

import "time"

type Job struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Location    string    `bson:"location" json:"location"`
	Salary      int       `bson:"salary" json:"salary"`
	Level       string    `bson:"level" json:"level"`
	Category    string    `bson:"category" json:"category"`
	CompanyID   string    `bson:"company_id" json:"company_id"`
	Visible     bool      `bson:"visible" json:"visible"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// JobWithCompany is a job with its owning company resolved inline.
type JobWithCompany struct {
	Job
	Company CompanySummary `json:"company"`
}

// JobWithApplicants is a company's own job plus how many applications it received.
type JobWithApplicants struct {
	Job
	Applicants int `json:"applicants"`
}
