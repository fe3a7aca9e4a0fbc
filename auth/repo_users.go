package auth

import (
	"context"
	"database/sql"
	"slices"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the bun-backed credential store.
type Users interface {
	UserDirectory
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users         = (*users)(nil)
	_ UserDirectory = (*users)(nil)
)

// NewUsersRepository creates the credential store over a bun DB.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) FindByEmail(ctx context.Context, email string, projections ...Projection) (*User, error) {
	return a.findOne(ctx, "email", email, projections)
}

func (a *users) FindByID(ctx context.Context, id uuid.UUID, projections ...Projection) (*User, error) {
	return a.findOne(ctx, "id", id, projections)
}

func (a *users) findOne(ctx context.Context, column string, value any, projections []Projection) (*User, error) {
	record := &User{}
	q := a.db.NewSelect().Model(record)

	if !slices.Contains(projections, ProjectionPasswordHash) {
		q = q.ExcludeColumn("password_hash")
	}

	err := q.
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user")
	}

	return record, nil
}

func (a *users) ExistsEmail(ctx context.Context, email string) (bool, error) {
	exists, err := a.db.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.email = ?", email).
		Exists(ctx)

	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email")
	}

	return exists, nil
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	record.EnsureDefaults()
	return a.Repository.CreateTx(ctx, a.db, record)
}

// IncrementSessionEpoch bumps token_version in a single UPDATE so concurrent
// global logouts for the same user never lose an increment. It returns the
// new epoch.
func (a *users) IncrementSessionEpoch(ctx context.Context, id uuid.UUID) (int64, error) {
	var version int64

	err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("token_version = token_version + 1").
		Where("id = ?", id).
		Returning("token_version").
		Scan(ctx, &version)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return 0, ErrIdentityNotFound
		}
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to increment session epoch")
	}

	return version, nil
}

func (a *users) SessionEpoch(ctx context.Context, id uuid.UUID) (int64, error) {
	var version int64

	err := a.db.NewSelect().
		Model((*User)(nil)).
		Column("token_version").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx, &version)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return 0, ErrIdentityNotFound
		}
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read session epoch")
	}

	return version, nil
}
