package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, nip, full_name, gender, birth_place, birth_date, position, rank, work_unit,
	employment_status, hire_date, phone, email, address, base_salary,
	created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.NIP, &e.FullName, &e.Gender, &e.BirthPlace, &e.BirthDate, &e.Position, &e.Rank, &e.WorkUnit,
		&e.EmploymentStatus, &e.HireDate, &e.Phone, &e.Email, &e.Address, &e.BaseSalary,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, where string, arg any) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where + ` AND deleted_at IS NULL`
	e, err := scanEmployee(q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *employeeRepositoryImpl) GetByNIP(ctx context.Context, nip string) (employee.Employee, error) {
	return r.getOne(ctx, "nip = $1", nip)
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			nip, full_name, gender, birth_place, birth_date, position, rank, work_unit,
			employment_status, hire_date, phone, email, address, base_salary,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		e.NIP, e.FullName, e.Gender, e.BirthPlace, e.BirthDate, e.Position, e.Rank, e.WorkUnit,
		e.EmploymentStatus, e.HireDate, e.Phone, e.Email, e.Address, e.BaseSalary,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrNIPExists
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) ExistsByNIP(ctx context.Context, nip string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE nip = $1 AND deleted_at IS NULL AND ($2::uuid IS NULL OR id <> $2::uuid)
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, nip, excludeID).Scan(&exists)
	return exists, err
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET nip = $2, full_name = $3, gender = $4, birth_place = $5, birth_date = $6,
			position = $7, rank = $8, work_unit = $9, employment_status = $10, hire_date = $11,
			phone = $12, email = $13, address = $14, base_salary = $15, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	tag, err := q.Exec(ctx, query,
		e.ID, e.NIP, e.FullName, e.Gender, e.BirthPlace, e.BirthDate,
		e.Position, e.Rank, e.WorkUnit, e.EmploymentStatus, e.HireDate,
		e.Phone, e.Email, e.Address, e.BaseSalary,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrNIPExists
		}
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) UpdateBaseSalary(ctx context.Context, id string, salary decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET base_salary = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id, salary)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) UpdateEmploymentStatus(ctx context.Context, id string, status employee.EmploymentStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET employment_status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	w.raw("deleted_at IS NULL")
	if filter.Search != nil && *filter.Search != "" {
		w.add("(full_name ILIKE $%[1]d OR nip ILIKE $%[1]d)", "%"+*filter.Search+"%")
	}
	if filter.WorkUnit != nil && *filter.WorkUnit != "" {
		w.add("work_unit = $%d", *filter.WorkUnit)
	}
	if filter.EmploymentStatus != nil && *filter.EmploymentStatus != "" {
		w.add("employment_status = $%d", *filter.EmploymentStatus)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees `+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + employeeColumns + ` FROM employees ` + w.where() + ` ORDER BY full_name ` + w.page(filter.Limit, filter.Offset())
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}
