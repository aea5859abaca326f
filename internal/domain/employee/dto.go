package employee

import "github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"

type ListFilter struct {
	Search *string
	Active *bool
	Page   int
	Limit  int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	Position *string `json:"position,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name cannot be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Email        *string `json:"email,omitempty"`
	Position     *string `json:"position,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	WorkSiteID   *string `json:"work_site_id,omitempty"`
	WorkSiteName *string `json:"work_site_name,omitempty"`
	Active       bool    `json:"active"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FullName:     e.FullName,
		Email:        e.Email,
		Position:     e.Position,
		Phone:        e.Phone,
		AvatarURL:    e.AvatarURL,
		WorkSiteID:   e.WorkSiteID,
		WorkSiteName: e.WorkSiteName,
		Active:       e.Active,
	}
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalItems int64              `json:"total_items"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
