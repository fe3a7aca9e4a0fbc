package catalog

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-shop/auth"
)

// Orders manages order records and serves the ownership policy.
type Orders interface {
	auth.OwnershipLookup

	List(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Create(ctx context.Context, record *Order) (*Order, error)
	Update(ctx context.Context, record *Order) (*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orders struct {
	repository.Repository[*Order]
	db *bun.DB
}

var (
	_ Orders               = (*orders)(nil)
	_ auth.OwnershipLookup = (*orders)(nil)
)

func NewOrdersRepository(db *bun.DB) Orders {
	repo := repository.NewRepository[*Order](db, repository.ModelHandlers[*Order]{
		NewRecord: func() *Order { return &Order{} },
		GetID: func(record *Order) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Order, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
	})

	return &orders{
		Repository: repo,
		db:         db,
	}
}

// FindOwnerID resolves the owning user for the ownership policy. Invalid
// and unknown ids both report the resource as absent.
func (r *orders) FindOwnerID(ctx context.Context, resourceID string) (uuid.UUID, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return uuid.Nil, auth.ErrResourceNotFound
	}

	var ownerID uuid.UUID

	err = r.db.NewSelect().
		Model((*Order)(nil)).
		Column("user_id").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx, &ownerID)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, auth.ErrResourceNotFound
		}
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load order owner")
	}

	return ownerID, nil
}

func (r *orders) List(ctx context.Context) ([]*Order, error) {
	var records []*Order

	err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list orders")
	}

	return records, nil
}

func (r *orders) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	record := &Order{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrResourceNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load order")
	}

	return record, nil
}

func (r *orders) Create(ctx context.Context, record *Order) (*Order, error) {
	record.EnsureDefaults()
	return r.Repository.CreateTx(ctx, r.db, record)
}

func (r *orders) Update(ctx context.Context, record *Order) (*Order, error) {
	if _, err := r.GetByID(ctx, record.ID); err != nil {
		return nil, err
	}
	return r.Repository.UpdateTx(ctx, r.db, record, repository.UpdateByID(record.ID.String()))
}

func (r *orders) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Order)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete order")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return auth.ErrResourceNotFound
	}

	return nil
}
