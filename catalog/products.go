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

// Products manages catalog products.
type Products interface {
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	Create(ctx context.Context, record *Product) (*Product, error)
	Update(ctx context.Context, record *Product) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type products struct {
	repository.Repository[*Product]
	db *bun.DB
}

var _ Products = (*products)(nil)

func NewProductsRepository(db *bun.DB) Products {
	repo := repository.NewRepository[*Product](db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(record *Product) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Product, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
	})

	return &products{
		Repository: repo,
		db:         db,
	}
}

func (r *products) List(ctx context.Context) ([]*Product, error) {
	var records []*Product

	err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list products")
	}

	return records, nil
}

func (r *products) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	record := &Product{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrResourceNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load product")
	}

	return record, nil
}

// GetByIDs loads the given products in one query. Callers compare result
// length against the request to reject unknown ids.
func (r *products) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error) {
	var records []*Product

	if len(ids) == 0 {
		return records, nil
	}

	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load products")
	}

	return records, nil
}

func (r *products) Create(ctx context.Context, record *Product) (*Product, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record)
}

func (r *products) Update(ctx context.Context, record *Product) (*Product, error) {
	if _, err := r.GetByID(ctx, record.ID); err != nil {
		return nil, err
	}
	return r.Repository.UpdateTx(ctx, r.db, record, repository.UpdateByID(record.ID.String()))
}

func (r *products) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete product")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return auth.ErrResourceNotFound
	}

	return nil
}
