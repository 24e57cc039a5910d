package fixtures

import (
	"context"
	"strings"
	"testing"

	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDepartments struct {
	department.DepartmentRepository
	names map[string]bool
}

func (f *fakeDepartments) GetByName(_ context.Context, name string) (department.Department, error) {
	if f.names[strings.ToLower(name)] {
		return department.Department{Name: name}, nil
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (f *fakeDepartments) Create(_ context.Context, d department.Department) (department.Department, error) {
	f.names[strings.ToLower(d.Name)] = true
	return d, nil
}

type fakeDesignations struct {
	designation.DesignationRepository
	names map[string]bool
}

func (f *fakeDesignations) GetByName(_ context.Context, name string) (designation.Designation, error) {
	if f.names[strings.ToLower(name)] {
		return designation.Designation{Name: name}, nil
	}
	return designation.Designation{}, designation.ErrDesignationNotFound
}

func (f *fakeDesignations) Create(_ context.Context, d designation.Designation) (designation.Designation, error) {
	f.names[strings.ToLower(d.Name)] = true
	return d, nil
}

type fakeUsers struct {
	user.UserRepository
	users []user.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUsers) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = int64(len(f.users) + 1)
	f.users = append(f.users, u)
	return u, nil
}

func TestSeeder_SeedIsIdempotent(t *testing.T) {
	departments := &fakeDepartments{names: map[string]bool{"hr": true}}
	designations := &fakeDesignations{names: map[string]bool{}}
	users := &fakeUsers{}
	seeder := NewSeeder(fakeTx{}, departments, designations, users)
	ctx := context.Background()

	admin := Admin{Email: " Admin@Example.com ", Password: "change-me-now"}
	require.NoError(t, seeder.Seed(ctx, admin))

	assert.Len(t, departments.names, len(GetDefaultDepartments()))
	assert.True(t, designations.names["employee"])
	require.Len(t, users.users, 1)
	assert.Equal(t, "admin@example.com", users.users[0].Email)
	assert.Equal(t, user.RoleAdmin, users.users[0].Role)
	require.NotNil(t, users.users[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*users.users[0].PasswordHash), []byte("change-me-now")))

	require.NoError(t, seeder.Seed(ctx, admin))
	assert.Len(t, users.users, 1)
	assert.Len(t, designations.names, len(GetDefaultDesignations()))
}

func TestSeeder_SkipsAdminWithoutEmail(t *testing.T) {
	users := &fakeUsers{}
	seeder := NewSeeder(fakeTx{}, &fakeDepartments{names: map[string]bool{}}, &fakeDesignations{names: map[string]bool{}}, users)

	require.NoError(t, seeder.Seed(context.Background(), Admin{}))
	assert.Empty(t, users.users)
}
