package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"simlab/internal/domain"
)

func valBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrBool(n sql.NullBool) *bool {
	if !n.Valid {
		return nil
	}
	b := n.Bool
	return &b
}

// jsonList encodes a string slice for a JSON column; nil becomes [].
func jsonList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

// Repo stores the catalog in MySQL. It implements domain.CatalogStore.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertCatalog makes the database mirror c in one transaction: plans are upserted and plans no
// longer listed are removed; comparison pairs and rankings are replaced wholesale.
func (r *Repo) UpsertCatalog(ctx context.Context, c domain.Catalog) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids := make([]any, 0, len(c.Plans))
	for i, p := range c.Plans {
		features, err := jsonList(p.Features)
		if err != nil {
			return err
		}
		cons, err := jsonList(p.Cons)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertPlanSQL,
			p.ID, i, p.Carrier, p.Parent, p.Network, p.MonthlyPrice, p.DataGB, p.DataGBLarge, p.LargePlanPrice,
			p.CallIncluded, p.MinContract, p.InitialCost, p.ESIM, p.Overseas, p.FamilyDiscount,
			valBool(p.DataRollover), valBool(p.StoreSupport), features, cons, p.BestFor,
			p.AffiliateURL, p.AffiliatePixel, p.LogoEmoji,
		); err != nil {
			return fmt.Errorf("upsert plan %s: %w", p.ID, err)
		}
		ids = append(ids, p.ID)
	}
	stale := deleteAllPlansSQL
	if len(ids) > 0 {
		stale = deleteStalePlansPrefix + "(" + strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",") + ")"
	}
	if _, err := tx.ExecContext(ctx, stale, ids...); err != nil {
		return fmt.Errorf("delete stale plans: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deletePairsSQL); err != nil {
		return fmt.Errorf("clear pairs: %w", err)
	}
	for i, pair := range c.Pairs {
		if _, err := tx.ExecContext(ctx, insertPairSQL, i, pair.A(), pair.B()); err != nil {
			return fmt.Errorf("insert pair %s: %w", pair.Slug(), err)
		}
	}

	if _, err := tx.ExecContext(ctx, deleteRankingsSQL); err != nil {
		return fmt.Errorf("clear rankings: %w", err)
	}
	for i, rk := range c.Rankings {
		order, err := jsonList(rk.RankingOrder)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertRankingSQL, rk.ID, i, rk.Title, rk.Description, order); err != nil {
			return fmt.Errorf("insert ranking %s: %w", rk.ID, err)
		}
	}

	return tx.Commit()
}

// LoadCatalog reads the catalog back in the order it was imported.
func (r *Repo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var c domain.Catalog

	plans, err := r.loadPlans(ctx)
	if err != nil {
		return c, err
	}
	c.Plans = plans

	rows, err := r.db.QueryContext(ctx, selectPairsSQL)
	if err != nil {
		return c, fmt.Errorf("query pairs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pair domain.ComparisonPair
		if err := rows.Scan(&pair[0], &pair[1]); err != nil {
			return c, err
		}
		c.Pairs = append(c.Pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return c, err
	}

	rankings, err := r.loadRankings(ctx)
	if err != nil {
		return c, err
	}
	c.Rankings = rankings

	c.Index()
	return c, nil
}

func (r *Repo) loadPlans(ctx context.Context) ([]domain.PlanRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectPlansSQL)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var out []domain.PlanRecord
	for rows.Next() {
		var (
			p               domain.PlanRecord
			rollover, store sql.NullBool
			features, cons  []byte
		)
		if err := rows.Scan(
			&p.ID, &p.Carrier, &p.Parent, &p.Network, &p.MonthlyPrice, &p.DataGB, &p.DataGBLarge, &p.LargePlanPrice,
			&p.CallIncluded, &p.MinContract, &p.InitialCost, &p.ESIM, &p.Overseas, &p.FamilyDiscount,
			&rollover, &store, &features, &cons, &p.BestFor, &p.AffiliateURL, &p.AffiliatePixel, &p.LogoEmoji,
		); err != nil {
			return nil, err
		}
		p.DataRollover, p.StoreSupport = ptrBool(rollover), ptrBool(store)
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("plan %s features: %w", p.ID, err)
		}
		if err := json.Unmarshal(cons, &p.Cons); err != nil {
			return nil, fmt.Errorf("plan %s cons: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) loadRankings(ctx context.Context) ([]domain.RankingDefinition, error) {
	rows, err := r.db.QueryContext(ctx, selectRankingsSQL)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	defer rows.Close()

	var out []domain.RankingDefinition
	for rows.Next() {
		var (
			rk    domain.RankingDefinition
			order []byte
		)
		if err := rows.Scan(&rk.ID, &rk.Title, &rk.Description, &order); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(order, &rk.RankingOrder); err != nil {
			return nil, fmt.Errorf("ranking %s order: %w", rk.ID, err)
		}
		out = append(out, rk)
	}
	return out, rows.Err()
}
