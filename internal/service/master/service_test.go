package master

import (
	"context"
	"testing"

	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
	"github.com/exellar/payroll-backend-go/internal/domain/master/worklocation"
	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	department.DepartmentRepository
	rows   map[int64]department.Department
	nextID int64
}

func (r *fakeDepartmentRepo) Create(_ context.Context, d department.Department) (department.Department, error) {
	for _, existing := range r.rows {
		if existing.Name == d.Name {
			return department.Department{}, department.ErrDepartmentNameExists
		}
	}
	r.nextID++
	d.ID = r.nextID
	r.rows[d.ID] = d
	return d, nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (department.Department, error) {
	d, ok := r.rows[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, req department.UpdateDepartmentRequest) error {
	d, ok := r.rows[req.ID]
	if !ok {
		return department.ErrDepartmentNotFound
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	r.rows[req.ID] = d
	return nil
}

type fakeDesignationRepo struct {
	designation.DesignationRepository
	byName map[string]designation.Designation
}

func (r *fakeDesignationRepo) GetByName(_ context.Context, name string) (designation.Designation, error) {
	d, ok := r.byName[name]
	if !ok {
		return designation.Designation{}, designation.ErrDesignationNotFound
	}
	return d, nil
}

type fakeWorkLocationRepo struct {
	worklocation.WorkLocationRepository
	created []worklocation.WorkLocation
}

func (r *fakeWorkLocationRepo) Create(_ context.Context, w worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	w.ID = int64(len(r.created) + 1)
	r.created = append(r.created, w)
	return w, nil
}

func newTestService() (MasterService, *fakeWorkLocationRepo) {
	locations := &fakeWorkLocationRepo{}
	svc := NewMasterService(
		&fakeDepartmentRepo{rows: map[int64]department.Department{}},
		&fakeDesignationRepo{byName: map[string]designation.Designation{"Engineer": {ID: 7, Name: "Engineer"}}},
		locations,
	)
	return svc, locations
}

func TestMasterService_Department(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "  Engineering "})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", created.Name)

	_, err = svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	_, err = svc.CreateDepartment(ctx, department.CreateDepartmentRequest{Name: " "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "name")

	desc := "Builds things"
	updated, err := svc.UpdateDepartment(ctx, department.UpdateDepartmentRequest{ID: created.ID, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	_, err = svc.UpdateDepartment(ctx, department.UpdateDepartmentRequest{ID: 99, Description: &desc})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestMasterService_DesignationByName(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.GetDesignationByName(context.Background(), " Engineer ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ID)

	_, err = svc.GetDesignationByName(context.Background(), "Pilot")
	assert.ErrorIs(t, err, designation.ErrDesignationNotFound)
}

func TestMasterService_CreateWorkLocation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	resp, err := svc.CreateWorkLocation(ctx, worklocation.CreateWorkLocationRequest{
		Name:            "HQ",
		Address:         "1 MG Road",
		City:            "Bengaluru",
		State:           "Karnataka",
		Pincode:         "560001",
		IsFilingAddress: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "HQ", resp.Name)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].IsFilingAddress)

	_, err = svc.CreateWorkLocation(ctx, worklocation.CreateWorkLocationRequest{Name: "Bad", Address: "x", City: "y", State: "z", Pincode: "12"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "pincode")
}
