package lead

import (
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"
)

type CreateLeadRequest struct {
	Name           string   `json:"name"`
	Company        *string  `json:"company,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Source         *string  `json:"source,omitempty"`
	AssignedTo     *string  `json:"assigned_to,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

func (r *CreateLeadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if r.EstimatedValue != nil && *r.EstimatedValue < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "estimated_value",
			Message: "estimated_value cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeadRequest struct {
	ID             string   `json:"-"`
	Name           *string  `json:"name,omitempty"`
	Company        *string  `json:"company,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Source         *string  `json:"source,omitempty"`
	EstimatedValue *float64 `json:"estimated_value,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

func (r *UpdateLeadRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be blank",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangeStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *ChangeStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	valid := []string{
		string(StatusNew),
		string(StatusContacted),
		string(StatusQualified),
		string(StatusWon),
		string(StatusLost),
	}
	if !validator.IsInSlice(r.Status, valid) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown status",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignLeadRequest struct {
	ID         string  `json:"-"`
	AssignedTo *string `json:"assigned_to"` // nil unassigns
}

type ListFilter struct {
	Status     *string
	AssignedTo *string
	Search     *string
	Page       int
	Limit      int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if f.Status != nil {
		valid := []string{
			string(StatusNew),
			string(StatusContacted),
			string(StatusQualified),
			string(StatusWon),
			string(StatusLost),
		}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "unknown status",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeadResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Company        *string   `json:"company,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Source         *string   `json:"source,omitempty"`
	Status         string    `json:"status"`
	AssignedTo     *string   `json:"assigned_to,omitempty"`
	AssignedToName *string   `json:"assigned_to_name,omitempty"`
	EstimatedValue *float64  `json:"estimated_value,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToResponse(l Lead) LeadResponse {
	return LeadResponse{
		ID:             l.ID,
		Name:           l.Name,
		Company:        l.Company,
		Email:          l.Email,
		Phone:          l.Phone,
		Source:         l.Source,
		Status:         string(l.Status),
		AssignedTo:     l.AssignedTo,
		AssignedToName: l.AssignedToName,
		EstimatedValue: l.EstimatedValue,
		Notes:          l.Notes,
		CreatedAt:      l.CreatedAt,
	}
}

type ListLeadResponse struct {
	Leads      []LeadResponse `json:"leads"`
	TotalItems int64          `json:"total_items"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}
