package catalog

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all catalog repositories.
type RepositoryManager interface {
	Products() Products
	Categories() Categories
	Orders() Orders

	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db         *bun.DB
	products   Products
	categories Categories
	orders     Orders
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:         db,
		products:   NewProductsRepository(db),
		categories: NewCategoriesRepository(db),
		orders:     NewOrdersRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.products == nil {
		return errors.New("repository products should be initialized")
	}

	if m.categories == nil {
		return errors.New("repository categories should be initialized")
	}

	if m.orders == nil {
		return errors.New("repository orders should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Products() Products {
	return m.products
}

func (m mngr) Categories() Categories {
	return m.categories
}

func (m mngr) Orders() Orders {
	return m.orders
}
