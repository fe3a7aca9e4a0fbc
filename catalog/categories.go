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

// Categories manages category records.
type Categories interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, record *Category) (*Category, error)
	Update(ctx context.Context, record *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categories struct {
	repository.Repository[*Category]
	db *bun.DB
}

var _ Categories = (*categories)(nil)

func NewCategoriesRepository(db *bun.DB) Categories {
	repo := repository.NewRepository[*Category](db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(record *Category) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Category, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
	})

	return &categories{
		Repository: repo,
		db:         db,
	}
}

func (r *categories) List(ctx context.Context) ([]*Category, error) {
	var records []*Category

	err := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list categories")
	}

	return records, nil
}

func (r *categories) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	record := &Category{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrResourceNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load category")
	}

	return record, nil
}

func (r *categories) Create(ctx context.Context, record *Category) (*Category, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.Repository.CreateTx(ctx, r.db, record)
}

func (r *categories) Update(ctx context.Context, record *Category) (*Category, error) {
	if _, err := r.GetByID(ctx, record.ID); err != nil {
		return nil, err
	}
	return r.Repository.UpdateTx(ctx, r.db, record, repository.UpdateByID(record.ID.String()))
}

func (r *categories) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Category)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete category")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return auth.ErrResourceNotFound
	}

	return nil
}
