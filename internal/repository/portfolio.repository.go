package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"portfolioservice/internal/converter"
	"portfolioservice/internal/db/models/postgres/public/model"
	"portfolioservice/internal/db/models/postgres/public/table"
	"portfolioservice/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// PortfolioRepository owns the portfolios table. The holdings, target state
// and user/RM detail columns are stored as JSON text; decoding happens here so
// services only ever see domain.Portfolio.
type PortfolioRepository interface {
	Get(id int64) (*domain.Portfolio, error)
	// GetForUpdate takes a row-level exclusive lock; it blocks other writers
	// until the surrounding transaction ends.
	GetForUpdate(tx *sql.Tx, id int64) (*domain.Portfolio, error)
	GetByUserID(userID string) (*domain.Portfolio, error)
	ListByRmID(rmID string) ([]domain.Portfolio, error)
	List() ([]domain.Portfolio, error)
	Add(db qrm.Queryable, p domain.Portfolio) (*domain.Portfolio, error)
	Update(db qrm.Queryable, p domain.Portfolio) (*domain.Portfolio, error)
}

type portfolioRepositoryHandler struct {
	Db    *sql.DB
	Codec converter.Codec
}

func NewPortfolioRepository(db *sql.DB, codec converter.Codec) PortfolioRepository {
	return portfolioRepositoryHandler{Db: db, Codec: codec}
}

func (h portfolioRepositoryHandler) Get(id int64) (*domain.Portfolio, error) {
	query := table.Portfolios.
		SELECT(table.Portfolios.AllColumns).
		WHERE(table.Portfolios.ID.EQ(postgres.Int(id)))

	out := model.Portfolios{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, domain.NotFoundError{Key: "id", Value: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio %d: %w", id, err)
	}

	return h.toDomain(out)
}

func (h portfolioRepositoryHandler) GetForUpdate(tx *sql.Tx, id int64) (*domain.Portfolio, error) {
	query := table.Portfolios.
		SELECT(table.Portfolios.AllColumns).
		WHERE(table.Portfolios.ID.EQ(postgres.Int(id))).
		FOR(postgres.UPDATE())

	out := model.Portfolios{}
	err := query.Query(tx, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, domain.NotFoundError{Key: "id", Value: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock portfolio %d: %w", id, err)
	}

	return h.toDomain(out)
}

func (h portfolioRepositoryHandler) GetByUserID(userID string) (*domain.Portfolio, error) {
	query := table.Portfolios.
		SELECT(table.Portfolios.AllColumns).
		WHERE(table.Portfolios.UserID.EQ(postgres.String(userID)))

	out := model.Portfolios{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, domain.NotFoundError{Key: "userId", Value: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio for user %s: %w", userID, err)
	}

	return h.toDomain(out)
}

func (h portfolioRepositoryHandler) ListByRmID(rmID string) ([]domain.Portfolio, error) {
	query := table.Portfolios.
		SELECT(table.Portfolios.AllColumns).
		WHERE(table.Portfolios.RmID.EQ(postgres.String(rmID)))

	rows := []model.Portfolios{}
	err := query.Query(h.Db, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios for rm %s: %w", rmID, err)
	}

	return h.toDomainSlice(rows)
}

func (h portfolioRepositoryHandler) List() ([]domain.Portfolio, error) {
	query := table.Portfolios.SELECT(table.Portfolios.AllColumns)

	rows := []model.Portfolios{}
	err := query.Query(h.Db, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	return h.toDomainSlice(rows)
}

func (h portfolioRepositoryHandler) Add(db qrm.Queryable, p domain.Portfolio) (*domain.Portfolio, error) {
	row, err := h.toModel(p)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	row.CreatedOn = now
	row.UpdatedOn = now

	query := table.Portfolios.
		INSERT(table.Portfolios.MutableColumns).
		MODEL(row).
		RETURNING(table.Portfolios.AllColumns)

	out := model.Portfolios{}
	err = query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return h.toDomain(out)
}

func (h portfolioRepositoryHandler) Update(db qrm.Queryable, p domain.Portfolio) (*domain.Portfolio, error) {
	row, err := h.toModel(p)
	if err != nil {
		return nil, err
	}
	row.UpdatedOn = time.Now().UTC()

	query := table.Portfolios.
		UPDATE(
			table.Portfolios.FreeCash,
			table.Portfolios.CooldownDays,
			table.Portfolios.DriftThresholdAbs,
			table.Portfolios.TriggerMode,
			table.Portfolios.UserID,
			table.Portfolios.RmID,
			table.Portfolios.UpdatedOn,
			table.Portfolios.UserDetails,
			table.Portfolios.RmDetails,
			table.Portfolios.Portfolio,
			table.Portfolios.TargetState,
		).
		MODEL(row).
		WHERE(table.Portfolios.ID.EQ(postgres.Int(row.ID))).
		RETURNING(table.Portfolios.AllColumns)

	out := model.Portfolios{}
	err = query.Query(db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, domain.NotFoundError{Key: "id", Value: strconv.FormatInt(row.ID, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio %d: %w", row.ID, err)
	}

	return h.toDomain(out)
}

func (h portfolioRepositoryHandler) toDomainSlice(rows []model.Portfolios) ([]domain.Portfolio, error) {
	out := make([]domain.Portfolio, 0, len(rows))
	for _, row := range rows {
		p, err := h.toDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (h portfolioRepositoryHandler) toDomain(row model.Portfolios) (*domain.Portfolio, error) {
	p := domain.Portfolio{
		ID:                row.ID,
		FreeCash:          row.FreeCash,
		CooldownDays:      int(row.CooldownDays),
		DriftThresholdAbs: row.DriftThresholdAbs,
		TriggerMode:       domain.ParseTriggerMode(row.TriggerMode),
		UserID:            row.UserID,
		CreatedOn:         row.CreatedOn,
		UpdatedOn:         row.UpdatedOn,
		Holdings:          domain.Holdings{},
		TargetState:       domain.TargetState{},
	}
	if row.RmID != nil {
		p.RmID = *row.RmID
	}

	if err := h.Codec.Unmarshal(row.UserDetails, &p.UserDetails); err != nil {
		return nil, fmt.Errorf("portfolio %d user details: %w", row.ID, err)
	}
	if err := h.Codec.Unmarshal(row.RmDetails, &p.RMDetails); err != nil {
		return nil, fmt.Errorf("portfolio %d rm details: %w", row.ID, err)
	}
	if err := h.Codec.Unmarshal(row.Portfolio, &p.Holdings); err != nil {
		return nil, fmt.Errorf("portfolio %d holdings: %w", row.ID, err)
	}
	if err := h.Codec.Unmarshal(row.TargetState, &p.TargetState); err != nil {
		return nil, fmt.Errorf("portfolio %d target state: %w", row.ID, err)
	}

	return &p, nil
}

func (h portfolioRepositoryHandler) toModel(p domain.Portfolio) (model.Portfolios, error) {
	userDetails, err := h.Codec.Marshal(p.UserDetails)
	if err != nil {
		return model.Portfolios{}, err
	}
	rmDetails, err := h.Codec.Marshal(p.RMDetails)
	if err != nil {
		return model.Portfolios{}, err
	}
	holdings, err := h.Codec.Marshal(p.Holdings)
	if err != nil {
		return model.Portfolios{}, err
	}
	targetState, err := h.Codec.Marshal(p.TargetState)
	if err != nil {
		return model.Portfolios{}, err
	}

	row := model.Portfolios{
		ID:                p.ID,
		FreeCash:          p.FreeCash,
		CooldownDays:      int32(p.CooldownDays),
		DriftThresholdAbs: p.DriftThresholdAbs,
		TriggerMode:       string(p.TriggerMode),
		UserID:            p.UserID,
		CreatedOn:         p.CreatedOn,
		UpdatedOn:         p.UpdatedOn,
		UserDetails:       userDetails,
		RmDetails:         rmDetails,
		Portfolio:         holdings,
		TargetState:       targetState,
	}
	if p.RmID != "" {
		row.RmID = &p.RmID
	}

	return row, nil
}
