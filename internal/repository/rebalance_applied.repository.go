package repository

import (
	"errors"
	"fmt"
	"time"

	"portfolioservice/internal/db/models/postgres/public/model"
	"portfolioservice/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// RebalanceAppliedRepository stores the (portfolio_id, rebalance_id)
// idempotency witness. Rows are insert-only; a witness is never updated or
// deleted.
type RebalanceAppliedRepository interface {
	Exists(db qrm.Queryable, portfolioID int64, rebalanceID string) (bool, error)
	Add(db qrm.Queryable, ra model.PortfolioRebalanceApplied) (*model.PortfolioRebalanceApplied, error)
}

type rebalanceAppliedRepositoryHandler struct{}

func NewRebalanceAppliedRepository() RebalanceAppliedRepository {
	return rebalanceAppliedRepositoryHandler{}
}

func (h rebalanceAppliedRepositoryHandler) Exists(db qrm.Queryable, portfolioID int64, rebalanceID string) (bool, error) {
	query := table.PortfolioRebalanceApplied.
		SELECT(table.PortfolioRebalanceApplied.ID).
		WHERE(
			table.PortfolioRebalanceApplied.PortfolioID.EQ(postgres.Int(portfolioID)).
				AND(table.PortfolioRebalanceApplied.RebalanceID.EQ(postgres.String(rebalanceID))),
		).
		LIMIT(1)

	out := model.PortfolioRebalanceApplied{}
	err := query.Query(db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check rebalance witness (%d, %s): %w", portfolioID, rebalanceID, err)
	}

	return true, nil
}

// Add inserts the witness row. A unique violation is not an error: it means a
// concurrent applier recorded the same batch first, which is exactly the state
// we wanted.
func (h rebalanceAppliedRepositoryHandler) Add(db qrm.Queryable, ra model.PortfolioRebalanceApplied) (*model.PortfolioRebalanceApplied, error) {
	ra.CreatedAt = time.Now().UTC()

	query := table.PortfolioRebalanceApplied.
		INSERT(table.PortfolioRebalanceApplied.MutableColumns).
		MODEL(ra).
		RETURNING(table.PortfolioRebalanceApplied.AllColumns)

	out := model.PortfolioRebalanceApplied{}
	err := query.Query(db, &out)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to record rebalance witness (%d, %s): %w", ra.PortfolioID, ra.RebalanceID, err)
	}

	return &out, nil
}
