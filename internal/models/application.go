package models

import "time"

// Application is a job seeker's submission against a job. EmployerID is copied
// from the job's PostedBy when the application is stored.
type Application struct {
	ID          string    `json:"_id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required,min=3,max=30"`
	Email       string    `json:"email" db:"email" validate:"required,email,max=254"`
	Phone       string    `json:"phone" db:"phone" validate:"required,number,max=20"`
	Address     string    `json:"address" db:"address" validate:"required,max=300"`
	CoverLetter string    `json:"coverLetter" db:"cover_letter" validate:"required,max=5000"`
	JobID       string    `json:"jobId" db:"job_id" validate:"required"`
	ApplicantID string    `json:"applicantId" db:"applicant_id"`
	EmployerID  string    `json:"employerId" db:"employer_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created"`
}
