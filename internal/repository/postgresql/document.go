package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/domain/document"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

const documentColumns = `id, name, type, employee, department, description, file_path, size_bytes, content_type, upload_date, status`

func scanDocument(row rowScanner) (document.Document, error) {
	var d document.Document
	err := row.Scan(&d.ID, &d.Name, &d.Type, &d.Employee, &d.Department, &d.Description,
		&d.FilePath, &d.SizeBytes, &d.ContentType, &d.UploadDate, &d.Status)
	return d, err
}

func (r *documentRepositoryImpl) Create(ctx context.Context, d document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO documents (name, type, employee, department, description, file_path, size_bytes, content_type, upload_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns

	created, err := scanDocument(q.QueryRow(ctx, query,
		d.Name, string(d.Type), d.Employee, d.Department, d.Description, d.FilePath, d.SizeBytes, d.ContentType, d.UploadDate, string(d.Status),
	))
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to create document: %w", err)
	}
	return created, nil
}

func (r *documentRepositoryImpl) GetByID(ctx context.Context, id int64) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDocument(q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	return d, nil
}

func (r *documentRepositoryImpl) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Type != nil && *filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR employee ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	query := fmt.Sprintf(`SELECT %s FROM documents WHERE %s ORDER BY upload_date DESC, id DESC`,
		documentColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := []document.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (r *documentRepositoryImpl) Update(ctx context.Context, req document.UpdateDocumentRequest) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{}
	args := []interface{}{}
	argIdx := 1

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, *value)
		argIdx++
	}
	add("name", req.Name)
	add("type", req.Type)
	add("employee", req.Employee)
	add("department", req.Department)
	add("description", req.Description)
	add("status", req.Status)

	if len(setParts) == 0 {
		return r.GetByID(ctx, req.ID)
	}

	query := fmt.Sprintf("UPDATE documents SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setParts, ", "), argIdx, documentColumns)
	args = append(args, req.ID)

	updated, err := scanDocument(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to update document: %w", err)
	}
	return updated, nil
}

func (r *documentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}
	return nil
}
