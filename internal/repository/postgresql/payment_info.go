package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/paymentinfo"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type paymentInfoRepositoryImpl struct {
	db *database.DB
}

func NewPaymentInfoRepository(db *database.DB) paymentinfo.PaymentInfoRepository {
	return &paymentInfoRepositoryImpl{db: db}
}

const paymentInfoColumns = `id, employee_id, payment_method, payment_description, is_automated, created_at, updated_at`

func scanPaymentInfo(row rowScanner) (paymentinfo.PaymentInformation, error) {
	var p paymentinfo.PaymentInformation
	err := row.Scan(&p.ID, &p.EmployeeID, &p.PaymentMethod, &p.PaymentDescription, &p.IsAutomated, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *paymentInfoRepositoryImpl) Create(ctx context.Context, p paymentinfo.PaymentInformation) (paymentinfo.PaymentInformation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payment_information (employee_id, payment_method, payment_description, is_automated)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + paymentInfoColumns

	created, err := scanPaymentInfo(q.QueryRow(ctx, query, p.EmployeeID, p.PaymentMethod, p.PaymentDescription, p.IsAutomated))
	if err != nil {
		if isForeignKeyViolation(err) {
			return paymentinfo.PaymentInformation{}, paymentinfo.ErrEmployeeNotFound
		}
		return paymentinfo.PaymentInformation{}, fmt.Errorf("failed to create payment information: %w", err)
	}
	return created, nil
}

func (r *paymentInfoRepositoryImpl) GetByID(ctx context.Context, id int64) (paymentinfo.PaymentInformation, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPaymentInfo(q.QueryRow(ctx, `SELECT `+paymentInfoColumns+` FROM payment_information WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return paymentinfo.PaymentInformation{}, paymentinfo.ErrPaymentInfoNotFound
		}
		return paymentinfo.PaymentInformation{}, fmt.Errorf("failed to get payment information: %w", err)
	}
	return p, nil
}

func (r *paymentInfoRepositoryImpl) List(ctx context.Context, employeeID *string) ([]paymentinfo.PaymentInformation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + paymentInfoColumns + ` FROM payment_information`
	args := []interface{}{}
	if employeeID != nil && *employeeID != "" {
		query += ` WHERE employee_id = $1`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY employee_id, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment information: %w", err)
	}
	defer rows.Close()

	infos := []paymentinfo.PaymentInformation{}
	for rows.Next() {
		p, err := scanPaymentInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment information: %w", err)
		}
		infos = append(infos, p)
	}
	return infos, rows.Err()
}

func (r *paymentInfoRepositoryImpl) Update(ctx context.Context, req paymentinfo.UpdatePaymentInfoRequest) (paymentinfo.PaymentInformation, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	if req.PaymentMethod != nil {
		setParts = append(setParts, fmt.Sprintf("payment_method = $%d", argIdx))
		args = append(args, *req.PaymentMethod)
		argIdx++
	}
	if req.PaymentDescription != nil {
		setParts = append(setParts, fmt.Sprintf("payment_description = $%d", argIdx))
		args = append(args, *req.PaymentDescription)
		argIdx++
	}
	if req.IsAutomated != nil {
		setParts = append(setParts, fmt.Sprintf("is_automated = $%d", argIdx))
		args = append(args, *req.IsAutomated)
		argIdx++
	}

	query := fmt.Sprintf("UPDATE payment_information SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setParts, ", "), argIdx, paymentInfoColumns)
	args = append(args, req.ID)

	updated, err := scanPaymentInfo(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return paymentinfo.PaymentInformation{}, paymentinfo.ErrPaymentInfoNotFound
		}
		return paymentinfo.PaymentInformation{}, fmt.Errorf("failed to update payment information: %w", err)
	}
	return updated, nil
}

func (r *paymentInfoRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM payment_information WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment information: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return paymentinfo.ErrPaymentInfoNotFound
	}
	return nil
}
