package models

import (
	"errors"
	"fmt"
	"time"
)

// Category is one of the fixed job categories offered by the board.
type Category string

const (
	CategoryGraphicsDesign Category = "Graphics & Design"
	CategoryMobileApp      Category = "Mobile App Development"
	CategoryFrontendWeb    Category = "Frontend Web Development"
	CategoryMERNStack      Category = "MERN Stack Development"
	CategoryAccountFinance Category = "Account & Finance"
	CategoryAI             Category = "Artificial Intelligence"
	CategoryVideoAnimation Category = "Video Animation"
	CategoryMEANStack      Category = "MEAN Stack Development"
	CategoryMEVNStack      Category = "MEVN Stack Development"
	CategoryDataEntry      Category = "Data Entry Operator"
)

var categories = []Category{
	CategoryGraphicsDesign,
	CategoryMobileApp,
	CategoryFrontendWeb,
	CategoryMERNStack,
	CategoryAccountFinance,
	CategoryAI,
	CategoryVideoAnimation,
	CategoryMEANStack,
	CategoryMEVNStack,
	CategoryDataEntry,
}

// Categories returns the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory converts a raw string to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Salary bounds, inclusive.
const (
	MinSalary int64 = 1000
	MaxSalary int64 = 999999999
)

var (
	ErrSalaryMissing    = errors.New("provide either a fixed salary or a salary range")
	ErrSalaryBoth       = errors.New("cannot enter fixed and ranged salary together")
	ErrSalaryRange      = errors.New("salaryFrom must not exceed salaryTo")
	ErrSalaryIncomplete = errors.New("a salary range needs both salaryFrom and salaryTo")
)

type Job struct {
	ID          string    `json:"_id" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required,min=3,max=30"`
	Description string    `json:"description" db:"description" validate:"required,max=500"`
	Category    Category  `json:"category" db:"category" validate:"required,category"`
	Country     string    `json:"country" db:"country" validate:"required,max=100"`
	City        string    `json:"city" db:"city" validate:"required,max=100"`
	Location    string    `json:"location" db:"location" validate:"required,max=200"`
	FixedSalary *int64    `json:"fixedSalary,omitempty" db:"fixed_salary"`
	SalaryFrom  *int64    `json:"salaryFrom,omitempty" db:"salary_from"`
	SalaryTo    *int64    `json:"salaryTo,omitempty" db:"salary_to"`
	Expired     bool      `json:"expired" db:"expired"`
	PostedBy    string    `json:"postedBy" db:"posted_by"`
	CreatedAt   time.Time `json:"jobPostedOn" db:"created"`
}

// CheckSalary enforces that exactly one salary representation is populated.
func (j *Job) CheckSalary() error {
	hasFixed := j.FixedSalary != nil
	hasRange := j.SalaryFrom != nil || j.SalaryTo != nil

	switch {
	case hasFixed && hasRange:
		return ErrSalaryBoth
	case !hasFixed && !hasRange:
		return ErrSalaryMissing
	case hasFixed:
		return checkAmount("fixedSalary", *j.FixedSalary)
	}

	if j.SalaryFrom == nil || j.SalaryTo == nil {
		return ErrSalaryIncomplete
	}
	if err := checkAmount("salaryFrom", *j.SalaryFrom); err != nil {
		return err
	}
	if err := checkAmount("salaryTo", *j.SalaryTo); err != nil {
		return err
	}
	if *j.SalaryFrom > *j.SalaryTo {
		return ErrSalaryRange
	}
	return nil
}

func checkAmount(field string, v int64) error {
	if v < MinSalary || v > MaxSalary {
		return fmt.Errorf("%s must be between %d and %d", field, MinSalary, MaxSalary)
	}
	return nil
}

// Optional distinguishes an absent patch field (Set == false) from an
// explicit null (Set == true, Value == nil).
type Optional[T any] struct {
	Set   bool
	Value *T
}

// JobPatch holds the fields supplied to a partial job update.
type JobPatch struct {
	Title       *string
	Description *string
	Category    *Category
	Country     *string
	City        *string
	Location    *string
	FixedSalary Optional[int64]
	SalaryFrom  Optional[int64]
	SalaryTo    Optional[int64]
	Expired     *bool
}

// Apply copies every supplied field onto j.
func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Category != nil {
		j.Category = *p.Category
	}
	if p.Country != nil {
		j.Country = *p.Country
	}
	if p.City != nil {
		j.City = *p.City
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.FixedSalary.Set {
		j.FixedSalary = p.FixedSalary.Value
	}
	if p.SalaryFrom.Set {
		j.SalaryFrom = p.SalaryFrom.Value
	}
	if p.SalaryTo.Set {
		j.SalaryTo = p.SalaryTo.Value
	}
	if p.Expired != nil {
		j.Expired = *p.Expired
	}
}
