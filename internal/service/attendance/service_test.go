package attendance

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/attendance"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-" + employeeID,
		"email":       employeeID + "@example.com",
		"employee_id": employeeID,
		"role":        string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
	nextID  int
	upserts int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (r *fakeAttendanceRepo) UpsertClockIn(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.upserts++
	key := recordKey(record.EmployeeID, record.Date)
	if existing, ok := r.records[key]; ok {
		record.ID = existing.ID
	} else {
		r.nextID++
		record.ID = fmt.Sprintf("att-%d", r.nextID)
	}
	stored := record
	r.records[key] = &stored
	return stored, nil
}

func (r *fakeAttendanceRepo) SetClockOut(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	key := recordKey(record.EmployeeID, record.Date)
	if _, ok := r.records[key]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	stored := record
	r.records[key] = &stored
	return stored, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	record, ok := r.records[recordKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, record := range r.records {
		if record.ID == id {
			return *record, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, record := range r.records {
		out = append(out, *record)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyListFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, record := range r.records {
		if record.EmployeeID == employeeID {
			out = append(out, *record)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) UpdateStatus(ctx context.Context, id string, status attendance.Status) error {
	for _, record := range r.records {
		if record.ID == id {
			record.Status = status
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) InsertAbsences(ctx context.Context, employeeIDs []string, date time.Time) (int64, error) {
	var inserted int64
	for _, id := range employeeIDs {
		key := recordKey(id, date)
		if _, ok := r.records[key]; ok {
			continue
		}
		r.nextID++
		r.records[key] = &attendance.Attendance{
			ID:         fmt.Sprintf("att-%d", r.nextID),
			EmployeeID: id,
			Date:       date,
			Status:     attendance.StatusAbsent,
		}
		inserted++
	}
	return inserted, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		repo.employees[e.ID] = e
	}
	return repo
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) AssignWorkSite(ctx context.Context, employeeID string, workSiteID *string) error {
	e, ok := r.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.WorkSiteID = workSiteID
	r.employees[employeeID] = e
	return nil
}

func (r *fakeEmployeeRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for _, e := range r.employees {
		if e.Active {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

type fakeWorkSiteRepo struct {
	// keyed by employee id, mirroring the assignment lookup.
	byEmployee map[string]*worksite.WorkSite
}

func newFakeWorkSiteRepo() *fakeWorkSiteRepo {
	return &fakeWorkSiteRepo{byEmployee: make(map[string]*worksite.WorkSite)}
}

func (r *fakeWorkSiteRepo) Create(ctx context.Context, site worksite.WorkSite) (worksite.WorkSite, error) {
	return site, nil
}

func (r *fakeWorkSiteRepo) GetByID(ctx context.Context, id string) (worksite.WorkSite, error) {
	return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
}

func (r *fakeWorkSiteRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*worksite.WorkSite, error) {
	return r.byEmployee[employeeID], nil
}

func (r *fakeWorkSiteRepo) List(ctx context.Context) ([]worksite.WorkSite, error) {
	return nil, nil
}

func (r *fakeWorkSiteRepo) Replace(ctx context.Context, site worksite.WorkSite) error {
	return nil
}

func (r *fakeWorkSiteRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeFileService struct {
	uploads []string
	err     error
}

func (f *fakeFileService) UploadSelfie(ctx context.Context, employeeID string, action string, file io.Reader, filename string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	url := fmt.Sprintf("https://cdn.example.com/selfies/%s/%s.jpg", employeeID, action)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeFileService) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return "https://cdn.example.com/avatars/" + employeeID + ".jpg", nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return path, nil
}

const testEmployeeID = "emp-1"

func selfieHeader() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "selfie.jpg", Size: 1024}
}

func newTestService() (*AttendanceServiceImpl, *fakeAttendanceRepo, *fakeWorkSiteRepo, *fakeFileService) {
	attendanceRepo := newFakeAttendanceRepo()
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID:       testEmployeeID,
		UserID:   "user-" + testEmployeeID,
		FullName: "Field Rep",
		Active:   true,
	})
	workSiteRepo := newFakeWorkSiteRepo()
	files := &fakeFileService{}

	svc := NewAttendanceService(attendanceRepo, employeeRepo, workSiteRepo, files).(*AttendanceServiceImpl)
	return svc, attendanceRepo, workSiteRepo, files
}

func TestClockOutWithoutClockIn(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	_, err := svc.ClockOut(ctx, attendance.ClockOutRequest{
		Latitude:  40.0,
		Longitude: -74.0,
	})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockInThenClockOut(t *testing.T) {
	svc, repo, _, files := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	in, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.0,
		Longitude:  -74.0,
		FileHeader: selfieHeader(),
	})
	require.NoError(t, err)
	assert.NotNil(t, in.ClockIn)
	assert.Nil(t, in.ClockOut)
	assert.Equal(t, string(attendance.StatusPresent), in.Status)
	assert.NotNil(t, in.ClockInSelfieURL)
	assert.Len(t, files.uploads, 1)

	out, err := svc.ClockOut(ctx, attendance.ClockOutRequest{
		Latitude:  40.0,
		Longitude: -74.0,
	})
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.NotNil(t, out.ClockIn)
	assert.NotNil(t, out.ClockOut)
	assert.Equal(t, string(attendance.StatusPresent), out.Status)

	// Still a single record for the day.
	assert.Len(t, repo.records, 1)
}

func TestClockOutTwice(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.0,
		Longitude:  -74.0,
		FileHeader: selfieHeader(),
	})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{Latitude: 40.0, Longitude: -74.0})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{Latitude: 40.0, Longitude: -74.0})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockInOutsideFence(t *testing.T) {
	svc, repo, sites, files := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	sites.byEmployee[testEmployeeID] = &worksite.WorkSite{
		ID:           "site-1",
		Name:         "HQ",
		Latitude:     40.0,
		Longitude:    -74.0,
		RadiusMeters: 100,
	}

	// Roughly 220m north of the fence center.
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.002,
		Longitude:  -74.0,
		FileHeader: selfieHeader(),
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)

	// Rejected before any selfie was stored or record written.
	assert.Empty(t, files.uploads)
	assert.Empty(t, repo.records)
}

func TestClockInInsideFence(t *testing.T) {
	svc, _, sites, _ := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	sites.byEmployee[testEmployeeID] = &worksite.WorkSite{
		ID:           "site-1",
		Name:         "HQ",
		Latitude:     40.0,
		Longitude:    -74.0,
		RadiusMeters: 100,
	}

	// Roughly 55m north of the fence center.
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.0005,
		Longitude:  -74.0,
		FileHeader: selfieHeader(),
	})
	assert.NoError(t, err)
}

func TestClockInOverwritesSameDay(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	first := "first attempt"
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.0,
		Longitude:  -74.0,
		Notes:      &first,
		FileHeader: selfieHeader(),
	})
	require.NoError(t, err)

	second := "second attempt"
	result, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.0,
		Longitude:  -74.0,
		Notes:      &second,
		FileHeader: selfieHeader(),
	})
	require.NoError(t, err)

	require.NotNil(t, result.Notes)
	assert.Equal(t, second, *result.Notes)
	assert.Len(t, repo.records, 1)
	assert.Equal(t, 2, repo.upserts)
}

func TestClockInRequiresSelfie(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:  40.0,
		Longitude: -74.0,
	})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "selfie", errs[0].Field)
}

func TestClockInInactiveEmployee(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	employeeRepo := newFakeEmployeeRepo(employee.Employee{
		ID:     testEmployeeID,
		Active: false,
	})
	svc := NewAttendanceService(attendanceRepo, employeeRepo, newFakeWorkSiteRepo(), &fakeFileService{})
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.0,
		Longitude:  -74.0,
		FileHeader: selfieHeader(),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestListAttendanceRequiresManager(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ListAttendance(authedContext(t, testEmployeeID, user.RoleEmployee), attendance.ListFilter{})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = svc.ListAttendance(authedContext(t, "mgr-1", user.RoleManager), attendance.ListFilter{})
	assert.NoError(t, err)
}

func TestGetAttendanceOwnership(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := authedContext(t, testEmployeeID, user.RoleEmployee)

	created, err := svc.ClockIn(ctx, attendance.ClockInRequest{
		Latitude:   40.0,
		Longitude:  -74.0,
		FileHeader: selfieHeader(),
	})
	require.NoError(t, err)
	require.Len(t, repo.records, 1)

	// The owner and a manager may read it, another employee may not.
	_, err = svc.GetAttendance(ctx, created.ID)
	assert.NoError(t, err)

	_, err = svc.GetAttendance(authedContext(t, "mgr-1", user.RoleManager), created.ID)
	assert.NoError(t, err)

	_, err = svc.GetAttendance(authedContext(t, "emp-2", user.RoleEmployee), created.ID)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}
