package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

type companyRepository struct {
	storage *Storage
}

const userColumns = `id, company_id, email, password_hash, full_name, role, created_at`

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (company_id, email, password_hash, full_name, role)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, user.CompanyID, user.Email, user.PasswordHash, user.FullName, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	const query = `SELECT id, name, base_currency FROM companies WHERE id=$1`
	var c model.Company
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.BaseCurrency); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *companyRepository) List(ctx context.Context) ([]model.Company, error) {
	const query = `SELECT id, name, base_currency FROM companies ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.BaseCurrency); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
