package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

// GetStatus looks up an API key. Unknown keys return nil, nil.
func (r *KeysRepo) GetStatus(ctx context.Context, key string) (*entities.ApiKey, error) {
	var keyRes entities.ApiKey

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(constants.GetAPIKeyByID), key).StructScan(&keyRes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}

	return &keyRes, nil
}

// Ping verifies the database connection.
func (r *KeysRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// RuleStatsRepo runs reporting queries over mapping rules with sqlx.
type RuleStatsRepo struct {
	db *sqlx.DB
}

func NewRuleStatsRepo(db *sqlx.DB) *RuleStatsRepo {
	return &RuleStatsRepo{db: db}
}

// ActiveRuleCountsBySite returns site ID -> number of active rules targeting it.
func (r *RuleStatsRepo) ActiveRuleCountsBySite(ctx context.Context, clientID string) (map[string]int, error) {
	var rows []entities.SiteRuleCount

	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(constants.CountActiveMappingRulesBySite), clientID, true); err != nil {
		return nil, fmt.Errorf("failed to count mapping rules: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.SiteID] = row.RuleCount
	}
	return counts, nil
}
