package lead

import (
	"context"
	"fmt"
	"testing"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/lead"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedContext(t *testing.T, employeeID string, role user.Role) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-" + employeeID,
		"employee_id": employeeID,
		"role":        string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeLeadRepo struct {
	leads  map[string]lead.Lead
	nextID int
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]lead.Lead)}
}

func (r *fakeLeadRepo) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	r.nextID++
	l.ID = fmt.Sprintf("lead-%d", r.nextID)
	r.leads[l.ID] = l
	return l, nil
}

func (r *fakeLeadRepo) GetByID(ctx context.Context, id string) (lead.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return lead.Lead{}, lead.ErrLeadNotFound
	}
	return l, nil
}

func (r *fakeLeadRepo) List(ctx context.Context, filter lead.ListFilter) ([]lead.Lead, int64, error) {
	var out []lead.Lead
	for _, l := range r.leads {
		if filter.AssignedTo != nil {
			if l.AssignedTo == nil || *l.AssignedTo != *filter.AssignedTo {
				continue
			}
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeadRepo) Update(ctx context.Context, l lead.Lead) error {
	if _, ok := r.leads[l.ID]; !ok {
		return lead.ErrLeadNotFound
	}
	r.leads[l.ID] = l
	return nil
}

func (r *fakeLeadRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.leads[id]; !ok {
		return lead.ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *fakeLeadRepo) CountByStatus(ctx context.Context) (map[lead.LeadStatus]int64, error) {
	counts := make(map[lead.LeadStatus]int64)
	for _, l := range r.leads {
		counts[l.Status]++
	}
	return counts, nil
}

func TestCreateDefaultsAssignmentToCreator(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)

	result, err := svc.Create(authedContext(t, "emp-1", user.RoleEmployee), lead.CreateLeadRequest{
		Name: "Acme Corp",
	})
	require.NoError(t, err)
	require.NotNil(t, result.AssignedTo)
	assert.Equal(t, "emp-1", *result.AssignedTo)
	assert.Equal(t, string(lead.StatusNew), result.Status)
}

func TestCreateByManagerLeavesUnassigned(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)

	result, err := svc.Create(authedContext(t, "mgr-1", user.RoleManager), lead.CreateLeadRequest{
		Name: "Acme Corp",
	})
	require.NoError(t, err)
	assert.Nil(t, result.AssignedTo)
}

func TestGetScopedToAssignee(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)

	owner := "emp-1"
	created, err := repo.Create(context.Background(), lead.Lead{
		Name:       "Acme Corp",
		Status:     lead.StatusNew,
		AssignedTo: &owner,
	})
	require.NoError(t, err)

	_, err = svc.Get(authedContext(t, "emp-1", user.RoleEmployee), created.ID)
	assert.NoError(t, err)

	_, err = svc.Get(authedContext(t, "emp-2", user.RoleEmployee), created.ID)
	assert.ErrorIs(t, err, lead.ErrLeadAccessDenied)

	_, err = svc.Get(authedContext(t, "mgr-1", user.RoleManager), created.ID)
	assert.NoError(t, err)
}

func TestListForcesOwnAssignments(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)

	mine, other := "emp-1", "emp-2"
	_, err := repo.Create(context.Background(), lead.Lead{Name: "Mine", Status: lead.StatusNew, AssignedTo: &mine})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), lead.Lead{Name: "Theirs", Status: lead.StatusNew, AssignedTo: &other})
	require.NoError(t, err)

	result, err := svc.List(authedContext(t, "emp-1", user.RoleEmployee), lead.ListFilter{})
	require.NoError(t, err)
	require.Len(t, result.Leads, 1)
	assert.Equal(t, "Mine", result.Leads[0].Name)

	all, err := svc.List(authedContext(t, "mgr-1", user.RoleManager), lead.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Leads, 2)
}

func TestChangeStatusFollowsPipeline(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)
	ctx := authedContext(t, "mgr-1", user.RoleManager)

	created, err := repo.Create(context.Background(), lead.Lead{Name: "Acme", Status: lead.StatusNew})
	require.NoError(t, err)

	// new -> won skips the pipeline.
	_, err = svc.ChangeStatus(ctx, lead.ChangeStatusRequest{ID: created.ID, Status: string(lead.StatusWon)})
	assert.ErrorIs(t, err, lead.ErrInvalidStatusTransition)

	for _, next := range []lead.LeadStatus{lead.StatusContacted, lead.StatusQualified, lead.StatusWon} {
		result, err := svc.ChangeStatus(ctx, lead.ChangeStatusRequest{ID: created.ID, Status: string(next)})
		require.NoError(t, err)
		assert.Equal(t, string(next), result.Status)
	}

	// Won is terminal.
	_, err = svc.ChangeStatus(ctx, lead.ChangeStatusRequest{ID: created.ID, Status: string(lead.StatusLost)})
	assert.ErrorIs(t, err, lead.ErrInvalidStatusTransition)
}

func TestAssignRequiresManager(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)

	created, err := repo.Create(context.Background(), lead.Lead{Name: "Acme", Status: lead.StatusNew})
	require.NoError(t, err)

	rep := "emp-2"
	_, err = svc.Assign(authedContext(t, "emp-1", user.RoleEmployee), lead.AssignLeadRequest{ID: created.ID, AssignedTo: &rep})
	assert.ErrorIs(t, err, lead.ErrLeadAccessDenied)

	result, err := svc.Assign(authedContext(t, "mgr-1", user.RoleManager), lead.AssignLeadRequest{ID: created.ID, AssignedTo: &rep})
	require.NoError(t, err)
	require.NotNil(t, result.AssignedTo)
	assert.Equal(t, rep, *result.AssignedTo)

	// nil reassignment puts the lead back in the pool.
	result, err = svc.Assign(authedContext(t, "mgr-1", user.RoleManager), lead.AssignLeadRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Nil(t, result.AssignedTo)
}

func TestDeleteRequiresManager(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo)

	created, err := repo.Create(context.Background(), lead.Lead{Name: "Acme", Status: lead.StatusNew})
	require.NoError(t, err)

	err = svc.Delete(authedContext(t, "emp-1", user.RoleEmployee), created.ID)
	assert.ErrorIs(t, err, lead.ErrLeadAccessDenied)

	err = svc.Delete(authedContext(t, "mgr-1", user.RoleManager), created.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.leads)
}
