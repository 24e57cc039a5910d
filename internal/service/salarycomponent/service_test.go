package salarycomponent

import (
	"context"
	"testing"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/domain/salarycomponent"
	"github.com/exellar/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponentRepo struct {
	salarycomponent.SalaryComponentRepository
	rows map[int64]salarycomponent.SalaryComponent
}

func (r *fakeComponentRepo) Create(_ context.Context, c salarycomponent.SalaryComponent) (salarycomponent.SalaryComponent, error) {
	c.ID = int64(len(r.rows) + 1)
	r.rows[c.ID] = c
	return c, nil
}

func (r *fakeComponentRepo) GetByID(_ context.Context, id int64) (salarycomponent.SalaryComponent, error) {
	c, ok := r.rows[id]
	if !ok {
		return salarycomponent.SalaryComponent{}, salarycomponent.ErrSalaryComponentNotFound
	}
	return c, nil
}

func (r *fakeComponentRepo) Update(_ context.Context, c salarycomponent.SalaryComponent) (salarycomponent.SalaryComponent, error) {
	r.rows[c.ID] = c
	return c, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	ids map[string]bool
}

func (r *fakeEmployeeRepo) Exists(_ context.Context, id string) (bool, error) {
	return r.ids[id], nil
}

func newTestService() (salarycomponent.SalaryComponentService, *fakeComponentRepo) {
	repo := &fakeComponentRepo{rows: map[int64]salarycomponent.SalaryComponent{}}
	return NewSalaryComponentService(repo, &fakeEmployeeRepo{ids: map[string]bool{"EMP001": true}}), repo
}

func TestSalaryComponentService_CreateDefaults(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), salarycomponent.CreateSalaryComponentRequest{Value: decimal.NewFromInt(1500)})
	require.NoError(t, err)
	assert.Equal(t, salarycomponent.DefaultName, resp.Name)
	assert.Equal(t, "EARNING", resp.ComponentType)
	assert.Equal(t, "FIXED", resp.CalculationType)
	assert.True(t, resp.IsTaxable)
	assert.True(t, resp.IsActive)
}

func TestSalaryComponentService_ValueRules(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  salarycomponent.CreateSalaryComponentRequest
	}{
		{"negative fixed", salarycomponent.CreateSalaryComponentRequest{CalculationType: "FIXED", Value: decimal.NewFromInt(-1)}},
		{"percentage over 100", salarycomponent.CreateSalaryComponentRequest{CalculationType: "PERCENTAGE", Value: decimal.NewFromInt(101)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), "value")
		})
	}
}

func TestSalaryComponentService_AssignToEmployee(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	resp, err := svc.AssignToEmployee(ctx, "EMP001", salarycomponent.CreateSalaryComponentRequest{Name: "HRA", Value: decimal.NewFromInt(6000)})
	require.NoError(t, err)
	require.NotNil(t, repo.rows[resp.ID].EmployeeID)
	assert.Equal(t, "EMP001", *repo.rows[resp.ID].EmployeeID)

	_, err = svc.AssignToEmployee(ctx, "EMP404", salarycomponent.CreateSalaryComponentRequest{Name: "HRA"})
	assert.ErrorIs(t, err, salarycomponent.ErrEmployeeNotFound)
}

func TestSalaryComponentService_Update(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, salarycomponent.CreateSalaryComponentRequest{Name: "Bonus", Value: decimal.NewFromInt(10)})
	require.NoError(t, err)

	calc := "PERCENTAGE_CTC"
	value := decimal.NewFromInt(150)
	_, err = svc.Update(ctx, salarycomponent.UpdateSalaryComponentRequest{ID: created.ID, CalculationType: &calc, Value: &value})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	inactive := false
	updated, err := svc.Update(ctx, salarycomponent.UpdateSalaryComponentRequest{ID: created.ID, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, salarycomponent.UpdateSalaryComponentRequest{ID: 42})
	assert.ErrorIs(t, err, salarycomponent.ErrSalaryComponentNotFound)
}
