package attendance

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"
)

var allowedSelfieExts = []string{".jpg", ".jpeg", ".png"}

func validateSelfie(errs validator.ValidationErrors, fileHeader *multipart.FileHeader, required bool) validator.ValidationErrors {
	if fileHeader == nil {
		if required {
			errs = append(errs, validator.ValidationError{
				Field:   "selfie",
				Message: "selfie photo is required",
			})
		}
		return errs
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !validator.IsInSlice(ext, allowedSelfieExts) {
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: "invalid file type: only jpg, jpeg, png allowed",
		})
	} else if fileHeader.Size > 10<<20 { // 10MB
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: "selfie photo size must not exceed 10MB",
		})
	}
	return errs
}

func validateCoordinate(errs validator.ValidationErrors, lat, lng float64) validator.ValidationErrors {
	if !validator.IsValidLatitude(lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

type ClockInRequest struct {
	EmployeeID string  `json:"-"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Notes      *string `json:"notes,omitempty"`

	SelfieURL  *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateCoordinate(errs, r.Latitude, r.Longitude)
	errs = validateSelfie(errs, r.FileHeader, true)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string  `json:"-"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Notes      *string `json:"notes,omitempty"`

	// Clock-out selfie is optional.
	SelfieURL  *string               `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateCoordinate(errs, r.Latitude, r.Longitude)
	errs = validateSelfie(errs, r.FileHeader, false)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	EmployeeID *string
	Date       *string
	StartDate  *string
	EndDate    *string
	Status     *string
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

	errs = validateDateFields(errs, f.Date, f.StartDate, f.EndDate)
	errs = validateStatusField(errs, f.Status)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyListFilter struct {
	Date      *string
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *MyListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	errs = validateDateFields(errs, f.Date, f.StartDate, f.EndDate)
	errs = validateStatusField(errs, f.Status)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDateFields(errs validator.ValidationErrors, dates ...*string) validator.ValidationErrors {
	names := []string{"date", "start_date", "end_date"}
	for i, d := range dates {
		if d == nil {
			continue
		}
		if _, ok := validator.IsValidDate(*d); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   names[i],
				Message: "must be YYYY-MM-DD",
			})
		}
	}
	return errs
}

func validateStatusField(errs validator.ValidationErrors, status *string) validator.ValidationErrors {
	if status == nil {
		return errs
	}
	valid := []string{
		string(StatusPresent),
		string(StatusAbsent),
		string(StatusLate),
		string(StatusEarlyDeparture),
	}
	if !validator.IsInSlice(*status, valid) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "unknown status",
		})
	}
	return errs
}

type AttendanceResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	EmployeeName      *string    `json:"employee_name,omitempty"`
	Date              string     `json:"date"`
	ClockIn           *time.Time `json:"clock_in,omitempty"`
	ClockOut          *time.Time `json:"clock_out,omitempty"`
	Status            string     `json:"status"`
	ClockInLatitude   *float64   `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64   `json:"clock_in_longitude,omitempty"`
	ClockInSelfieURL  *string    `json:"clock_in_selfie_url,omitempty"`
	ClockOutLatitude  *float64   `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64   `json:"clock_out_longitude,omitempty"`
	ClockOutSelfieURL *string    `json:"clock_out_selfie_url,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		Date:              a.Date.Format("2006-01-02"),
		ClockIn:           a.ClockIn,
		ClockOut:          a.ClockOut,
		Status:            string(a.Status),
		ClockInLatitude:   a.ClockInLatitude,
		ClockInLongitude:  a.ClockInLongitude,
		ClockInSelfieURL:  a.ClockInSelfieURL,
		ClockOutLatitude:  a.ClockOutLatitude,
		ClockOutLongitude: a.ClockOutLongitude,
		ClockOutSelfieURL: a.ClockOutSelfieURL,
		Notes:             a.Notes,
	}
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalItems  int64                `json:"total_items"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}
