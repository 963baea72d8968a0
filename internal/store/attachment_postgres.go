package store

import (
	"context"
	"fmt"
	"time"

	"redress/internal/utils"
	"redress/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const attachmentTableName = "redress.grievance_attachments"

var attachmentColumns = utils.StructTagValues(types.Attachment{})

type AttachmentRepository struct {
	pool *pgxpool.Pool
}

func NewAttachmentRepository(pool *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{pool: pool}
}

var _ AttachmentStore = (*AttachmentRepository)(nil)

func (r *AttachmentRepository) CreateAttachment(ctx context.Context, attachment *types.Attachment) error {

	if attachment.ID == "" {
		attachment.ID = utils.NanoID()
	}
	if attachment.UploadedAt.IsZero() {
		attachment.UploadedAt = time.Now()
	}

	query, args, err := psql().Insert(attachmentTableName).
		SetMap(utils.StructToMap(attachment)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert attachment query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create attachment")

}

func (r *AttachmentRepository) Attachment(ctx context.Context, attachmentID string) (*types.Attachment, error) {

	query, args, err := psql().Select(attachmentColumns...).From(attachmentTableName).
		Where(sq.Eq{"id": attachmentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachment query: %w", err)
	}

	var attachment = new(types.Attachment)
	err = pgxscan.Get(ctx, r.pool, attachment, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrAttachmentNotFound
	}

	return attachment, nil

}

func (r *AttachmentRepository) AttachmentsByGrievance(ctx context.Context, grievanceID string) ([]types.Attachment, error) {

	query, args, err := psql().Select(attachmentColumns...).From(attachmentTableName).
		Where(sq.Eq{"grievance_id": grievanceID}).
		OrderBy("uploaded_at asc, id asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate attachments query for grievance %s: %w", grievanceID, err)
	}

	var attachments = make([]types.Attachment, 0)
	err = pgxscan.Select(ctx, r.pool, &attachments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	return attachments, nil
}

func (r *AttachmentRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {

	query, args, err := psql().Delete(attachmentTableName).
		Where(sq.Eq{"id": attachmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete attachment query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrAttachmentNotFound
	}

	return nil
}

// DeleteAttachmentsByGrievance removes every attachment record for a
// grievance. Unrouted; kept for operational cleanup.
func (r *AttachmentRepository) DeleteAttachmentsByGrievance(ctx context.Context, grievanceID string) error {

	query, args, err := psql().Delete(attachmentTableName).
		Where(sq.Eq{"grievance_id": grievanceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete attachments query for grievance %s: %w", grievanceID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete attachments")

}
