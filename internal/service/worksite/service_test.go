package worksite

import (
	"context"
	"fmt"
	"testing"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleContext(t *testing.T, role user.Role) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": "user-1",
		"role":    string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeWorkSiteRepo struct {
	sites  map[string]worksite.WorkSite
	nextID int
}

func newFakeWorkSiteRepo() *fakeWorkSiteRepo {
	return &fakeWorkSiteRepo{sites: make(map[string]worksite.WorkSite)}
}

func (r *fakeWorkSiteRepo) Create(ctx context.Context, site worksite.WorkSite) (worksite.WorkSite, error) {
	r.nextID++
	site.ID = fmt.Sprintf("site-%d", r.nextID)
	r.sites[site.ID] = site
	return site, nil
}

func (r *fakeWorkSiteRepo) GetByID(ctx context.Context, id string) (worksite.WorkSite, error) {
	site, ok := r.sites[id]
	if !ok {
		return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
	}
	return site, nil
}

func (r *fakeWorkSiteRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*worksite.WorkSite, error) {
	return nil, nil
}

func (r *fakeWorkSiteRepo) List(ctx context.Context) ([]worksite.WorkSite, error) {
	var out []worksite.WorkSite
	for _, site := range r.sites {
		out = append(out, site)
	}
	return out, nil
}

func (r *fakeWorkSiteRepo) Replace(ctx context.Context, site worksite.WorkSite) error {
	if _, ok := r.sites[site.ID]; !ok {
		return worksite.ErrWorkSiteNotFound
	}
	r.sites[site.ID] = site
	return nil
}

func (r *fakeWorkSiteRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sites[id]; !ok {
		return worksite.ErrWorkSiteNotFound
	}
	delete(r.sites, id)
	return nil
}

func validRequest() worksite.UpsertWorkSiteRequest {
	return worksite.UpsertWorkSiteRequest{
		Name:         "HQ",
		Latitude:     40.0,
		Longitude:    -74.0,
		RadiusMeters: 150,
		WorkStartsAt: "09:00",
		WorkEndsAt:   "17:00",
		GraceMinutes: 15,
	}
}

func TestCreateRequiresAdmin(t *testing.T) {
	svc := NewWorkSiteService(newFakeWorkSiteRepo(), 100)

	_, err := svc.Create(roleContext(t, user.RoleManager), validRequest())
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.Create(roleContext(t, user.RoleAdmin), validRequest())
	assert.NoError(t, err)
}

func TestCreateDefaultsRadius(t *testing.T) {
	svc := NewWorkSiteService(newFakeWorkSiteRepo(), 100)

	req := validRequest()
	req.RadiusMeters = 0
	created, err := svc.Create(roleContext(t, user.RoleAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, float64(100), created.RadiusMeters)
}

func TestCreateValidatesSchedule(t *testing.T) {
	svc := NewWorkSiteService(newFakeWorkSiteRepo(), 100)

	req := validRequest()
	req.WorkStartsAt = "9am"
	_, err := svc.Create(roleContext(t, user.RoleAdmin), req)
	assert.Error(t, err)
}

func TestReplaceRewritesWholeSite(t *testing.T) {
	repo := newFakeWorkSiteRepo()
	svc := NewWorkSiteService(repo, 100)
	adminCtx := roleContext(t, user.RoleAdmin)

	created, err := svc.Create(adminCtx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.ID = created.ID
	req.Name = "Warehouse"
	req.RadiusMeters = 300
	replaced, err := svc.Replace(adminCtx, req)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", replaced.Name)
	assert.Equal(t, float64(300), replaced.RadiusMeters)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", stored.Name)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	repo := newFakeWorkSiteRepo()
	svc := NewWorkSiteService(repo, 100)

	created, err := svc.Create(roleContext(t, user.RoleAdmin), validRequest())
	require.NoError(t, err)

	err = svc.Delete(roleContext(t, user.RoleEmployee), created.ID)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	err = svc.Delete(roleContext(t, user.RoleAdmin), created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.sites)
}
