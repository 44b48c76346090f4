// backend-go/internal/repository/postgres/policy_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type policyRepository struct {
	db *DB
}

func NewPolicyRepository(db *DB) *policyRepository {
	return &policyRepository{db: db}
}

// GetPolicy reads the single global policy row. A missing row is not an
// error; the built-in defaults apply.
func (r *policyRepository) GetPolicy(ctx context.Context) (domain.InventoryPolicy, error) {
	query := `
		SELECT safety_stock_days, default_lead_time_days, service_level
		FROM inventory_policies
		ORDER BY id
		LIMIT 1
	`

	var policy domain.InventoryPolicy
	err := sqlx.GetContext(ctx, r.db, &policy, query)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultInventoryPolicy(), nil
	}
	if err != nil {
		return domain.InventoryPolicy{}, fmt.Errorf("failed to get inventory policy: %w", err)
	}

	return policy, nil
}
