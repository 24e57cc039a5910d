package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/employee"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/exellar/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func createTestEmployee(t *testing.T, db *database.DB, id, email string) employee.Employee {
	t.Helper()

	repo := postgresql.NewEmployeeRepository(db)
	e, err := repo.Create(context.Background(), employee.Employee{
		EmployeeID:    id,
		FirstName:     "Test",
		LastName:      id,
		WorkEmail:     email,
		DateOfJoining: date("2024-01-15"),
		DateOfBirth:   date("1990-05-01"),
		Address:       "Default Address",
		Gender:        employee.GenderFemale,
		Designation:   employee.DefaultDesignation,
		Status:        employee.StatusActive,
		BasicSalary:   decimal.NewFromInt(30000),
		AnnualCTC:     decimal.NewFromInt(480000),
	})
	require.NoError(t, err)
	return e
}
