package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/printshop/internal/domain/model"
)

type pricingRepository struct {
	storage *Storage
}

type currencyRepository struct {
	storage *Storage
}

const tierColumns = `id, company_id, name, label, markup_percent, is_default`

func scanTier(row scanner) (*model.PricingTier, error) {
	var t model.PricingTier
	if err := row.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Label, &t.MarkupPercent, &t.IsDefault); err != nil {
		return nil, translateError(err)
	}
	return &t, nil
}

func (r *pricingRepository) ListTiers(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error) {
	const query = `SELECT ` + tierColumns + ` FROM pricing_tiers WHERE company_id=$1 ORDER BY is_default DESC, name`
	rows, err := r.storage.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PricingTier
	for rows.Next() {
		t, err := scanTier(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *pricingRepository) GetTier(ctx context.Context, companyID, tierID uuid.UUID) (*model.PricingTier, error) {
	const query = `SELECT ` + tierColumns + ` FROM pricing_tiers WHERE company_id=$1 AND id=$2`
	return scanTier(r.storage.pool.QueryRow(ctx, query, companyID, tierID))
}

func (r *pricingRepository) DefaultTier(ctx context.Context, companyID uuid.UUID) (*model.PricingTier, error) {
	const query = `SELECT ` + tierColumns + ` FROM pricing_tiers WHERE company_id=$1 AND is_default`
	return scanTier(r.storage.pool.QueryRow(ctx, query, companyID))
}

func (r *pricingRepository) CreateTier(ctx context.Context, tier model.PricingTier) (*model.PricingTier, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if tier.IsDefault {
			const clearDefault = `UPDATE pricing_tiers SET is_default=FALSE WHERE company_id=$1 AND is_default`
			if _, err := tx.Exec(ctx, clearDefault, tier.CompanyID); err != nil {
				return err
			}
		}

		const insert = `INSERT INTO pricing_tiers (company_id, name, label, markup_percent, is_default)
                        VALUES ($1, $2, $3, $4, $5) RETURNING id`
		return tx.QueryRow(ctx, insert, tier.CompanyID, tier.Name, tier.Label, tier.MarkupPercent, tier.IsDefault).Scan(&tier.ID)
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &tier, nil
}

func (r *currencyRepository) ListCurrencies(ctx context.Context) ([]model.Currency, error) {
	const query = `SELECT code, name, symbol FROM currencies ORDER BY code`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Currency
	for rows.Next() {
		var c model.Currency
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *currencyRepository) GetCurrency(ctx context.Context, code string) (*model.Currency, error) {
	const query = `SELECT code, name, symbol FROM currencies WHERE code=$1`
	var c model.Currency
	if err := r.storage.pool.QueryRow(ctx, query, code).Scan(&c.Code, &c.Name, &c.Symbol); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *currencyRepository) ListRates(ctx context.Context, companyID uuid.UUID, currency string) ([]model.ExchangeRate, error) {
	statement := r.storage.builder.
		Select("id", "company_id", "currency_code", "rate_to_company_currency", "valid_from", "is_active").
		From("exchange_rates").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("valid_from DESC")
	if currency != "" {
		statement = statement.Where(sq.Eq{"currency_code": currency})
	}

	query, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ExchangeRate
	for rows.Next() {
		var rate model.ExchangeRate
		if err := rows.Scan(&rate.ID, &rate.CompanyID, &rate.CurrencyCode, &rate.RateToCompanyCurrency, &rate.ValidFrom, &rate.IsActive); err != nil {
			return nil, err
		}
		result = append(result, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *currencyRepository) CreateRate(ctx context.Context, rate model.ExchangeRate) (*model.ExchangeRate, error) {
	const query = `INSERT INTO exchange_rates (company_id, currency_code, rate_to_company_currency, valid_from, is_active)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query, rate.CompanyID, rate.CurrencyCode, rate.RateToCompanyCurrency, rate.ValidFrom, rate.IsActive).Scan(&rate.ID)
	if err != nil {
		return nil, translateError(err)
	}
	return &rate, nil
}
