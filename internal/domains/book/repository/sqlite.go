package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	authorRepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book/model"
	"library-backend/internal/infrastructure/database"
)

// BookRow is the bun model of the books table. Genres are stored as a JSON array.
type BookRow struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Title     string    `bun:"title,notnull"`
	Published int32     `bun:"published,notnull"`
	Genres    []string  `bun:"genres,notnull"`
	AuthorID  int64     `bun:"author_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`

	Author *authorRepo.AuthorRow `bun:"rel:belongs-to,join:author_id=id"`
}

func (r *BookRow) toModel() *model.Book {
	b := &model.Book{
		Key:       r.ID,
		Title:     r.Title,
		Published: r.Published,
		Genres:    r.Genres,
		AuthorKey: r.AuthorID,
		CreatedAt: r.CreatedAt,
	}
	if b.Genres == nil {
		b.Genres = []string{}
	}
	if r.Author != nil {
		b.Author = r.Author.ToModel()
	}
	return b
}

// SQLiteTables lists the tables this repository needs. Create after the author tables.
func SQLiteTables() []database.TableModel {
	return []database.TableModel{{
		Model:       (*BookRow)(nil),
		ForeignKeys: []string{`("author_id") REFERENCES "authors" ("id")`},
	}}
}

type sqliteRepository struct {
	db *bun.DB
}

// NewSQLiteRepository creates a book repository backed by bun/sqlite
func NewSQLiteRepository(db *bun.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	row := &BookRow{
		Title:     b.Title,
		Published: b.Published,
		Genres:    append([]string{}, b.Genres...),
		AuthorID:  b.AuthorKey,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.db.NewInsert().Model(row).Returning("id").Exec(ctx); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return row.toModel(), nil
}

func (r *sqliteRepository) Find(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	var rows []BookRow

	q := r.db.NewSelect().
		Model(&rows).
		Relation("Author").
		OrderExpr("b.id ASC")

	if filter.Genre != nil {
		q = q.Where("EXISTS (SELECT 1 FROM json_each(b.genres) WHERE json_each.value = ?)", *filter.Genre)
	}
	if filter.AuthorName != nil {
		q = q.Where("author.name = ?", *filter.AuthorName)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]model.Book, 0, len(rows))
	for i := range rows {
		books = append(books, *rows[i].toModel())
	}
	return books, nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*BookRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

func (r *sqliteRepository) CountByAuthorName(ctx context.Context, name string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*BookRow)(nil)).
		Join("JOIN authors AS a ON a.id = b.author_id").
		Where("a.name = ?", name).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count books by author: %w", err)
	}
	return count, nil
}
