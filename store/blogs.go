package store

import (
	"context"
	"database/sql"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ErrBlogNotFound is returned for lookups and deletes that match no row.
var ErrBlogNotFound = goerrors.New("blog not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// Blogs manages blog post persistence.
type Blogs interface {
	List(ctx context.Context) ([]*Blog, error)
	GetByID(ctx context.Context, id int64) (*Blog, error)
	Create(ctx context.Context, record *Blog) (*Blog, error)
	Delete(ctx context.Context, id int64) error
}

type blogs struct {
	db *bun.DB
}

var _ Blogs = (*blogs)(nil)

func NewBlogsRepository(db *bun.DB) Blogs {
	return &blogs{db: db}
}

func (b *blogs) List(ctx context.Context) ([]*Blog, error) {
	records := make([]*Blog, 0)
	err := b.db.NewSelect().
		Model(&records).
		Order("blg.id ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list blogs")
	}

	return records, nil
}

func (b *blogs) GetByID(ctx context.Context, id int64) (*Blog, error) {
	record := &Blog{}
	err := b.db.NewSelect().
		Model(record).
		Where("blg.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch blog")
	}

	return record, nil
}

func (b *blogs) Create(ctx context.Context, record *Blog) (*Blog, error) {
	_, err := b.db.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create blog")
	}

	return record, nil
}

func (b *blogs) Delete(ctx context.Context, id int64) error {
	res, err := b.db.NewDelete().
		Model((*Blog)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete blog")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrBlogNotFound
	}

	return nil
}
