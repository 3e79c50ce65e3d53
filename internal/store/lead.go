package store

import (
	"context"
	"errors"
	"fmt"

	"fundpath/internal/utils"
	"fundpath/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadTableName = "leads"

var leadColumns = utils.StructTagValues(types.Lead{})

type LeadRepository struct {
	pool dbtx
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

func (r *LeadRepository) Lead(ctx context.Context, leadID string) (*types.Lead, error) {

	query, args, err := psql().Select(leadColumns...).From(leadTableName).
		Where(sq.Eq{"id": leadID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lead query: %w", err)
	}

	var lead = new(types.Lead)
	err = pgxscan.Get(ctx, r.pool, lead, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrLeadNotFound
	}

	return lead, nil
}

// InsertLead writes a new row. When the submission key was already used the
// insert is skipped and the id of the existing row is returned.
func (r *LeadRepository) InsertLead(ctx context.Context, patch types.LeadPatch) (string, error) {

	if patch.ID == nil {
		patch.ID = utils.StringPtr(uuid.NewString())
	}

	query, args, err := insertLeadQuery(patch)
	if err != nil {
		return "", fmt.Errorf("failed to generate insert lead query: %w", err)
	}

	var id string
	err = r.pool.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) && patch.SubmissionKey != nil {
		return r.leadIDBySubmissionKey(ctx, *patch.SubmissionKey)
	}

	return id, utils.ErrorWrapOrNil(err, "failed to create lead")
}

// UpdateLead sets only the non-nil columns of patch.
func (r *LeadRepository) UpdateLead(ctx context.Context, leadID string, patch types.LeadPatch) error {

	query, args, err := updateLeadQuery(leadID, patch)
	if errors.Is(err, errEmptyPatch) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to generate update lead query for lead %s: %w", leadID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return utils.ErrorWrapOrNil(err, "failed to update lead")
	}

	if tag.RowsAffected() == 0 {
		return types.ErrLeadNotFound
	}

	return nil
}

func (r *LeadRepository) leadIDBySubmissionKey(ctx context.Context, key string) (string, error) {

	query, args, err := psql().Select("id").From(leadTableName).
		Where(sq.Eq{"submission_key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to generate submission key query: %w", err)
	}

	var id string
	err = r.pool.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", types.ErrLeadNotFound
	}

	return id, utils.ErrorWrapOrNil(err, "failed to look up lead by submission key")
}

var errEmptyPatch = errors.New("patch sets no columns")

func insertLeadQuery(patch types.LeadPatch) (string, []any, error) {
	return psql().Insert(leadTableName).
		SetMap(utils.StructToMapOmitNil(patch)).
		Suffix("ON CONFLICT (submission_key) DO NOTHING RETURNING id").
		ToSql()
}

func updateLeadQuery(leadID string, patch types.LeadPatch) (string, []any, error) {
	// identity and idempotency key are fixed at insert
	patch.ID = nil
	patch.SubmissionKey = nil

	columns := utils.StructToMapOmitNil(patch)
	if len(columns) == 0 {
		return "", nil, errEmptyPatch
	}

	return psql().Update(leadTableName).SetMap(columns).Where(sq.Eq{"id": leadID}).ToSql()
}
