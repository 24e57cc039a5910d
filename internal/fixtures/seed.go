package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/master/department"
	"github.com/exellar/payroll-backend-go/internal/domain/master/designation"
	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	authService "github.com/exellar/payroll-backend-go/internal/service/auth"
)

// Admin is the bootstrap account created when no user owns Email yet.
type Admin struct {
	Email    string
	Password string
}

type Seeder struct {
	tx              database.Transactor
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
	userRepo        user.UserRepository
}

func NewSeeder(
	tx database.Transactor,
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
	userRepo user.UserRepository,
) *Seeder {
	return &Seeder{
		tx:              tx,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
		userRepo:        userRepo,
	}
}

// Seed inserts the default departments and designations and, when admin has
// an email, the admin account. Rows that already exist are left alone, so
// Seed can run on every start.
func (s *Seeder) Seed(ctx context.Context, admin Admin) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created := 0
		// Look up before inserting: a unique violation would abort the transaction.
		for _, d := range GetDefaultDepartments() {
			_, err := s.departmentRepo.GetByName(ctx, d.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, department.ErrDepartmentNotFound) {
				return fmt.Errorf("seed department %s: %w", d.Name, err)
			}
			if _, err := s.departmentRepo.Create(ctx, d); err != nil {
				return fmt.Errorf("seed department %s: %w", d.Name, err)
			}
			created++
		}

		for _, d := range GetDefaultDesignations() {
			_, err := s.designationRepo.GetByName(ctx, d.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, designation.ErrDesignationNotFound) {
				return fmt.Errorf("seed designation %s: %w", d.Name, err)
			}
			if _, err := s.designationRepo.Create(ctx, d); err != nil {
				return fmt.Errorf("seed designation %s: %w", d.Name, err)
			}
			created++
		}

		if admin.Email != "" {
			ok, err := s.seedAdmin(ctx, admin)
			if err != nil {
				return err
			}
			if ok {
				created++
			}
		}

		slog.Info("default data seeded", "created", created)
		return nil
	})
}

func (s *Seeder) seedAdmin(ctx context.Context, admin Admin) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	hash, err := authService.HashPassword(admin.Password)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	if _, err := s.userRepo.Create(ctx, user.User{
		Email:        email,
		PasswordHash: &hash,
		Role:         user.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("admin account created", "email", email)
	return true, nil
}
