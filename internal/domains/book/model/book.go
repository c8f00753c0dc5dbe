package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authorModel "library-backend/internal/domains/author/model"
	"library-backend/internal/shared/identifier"
)

const MinTitleLength = 2

// Book is an immutable catalog entry. AuthorKey references an existing Author.
type Book struct {
	Key       int64    `json:"-" db:"id"`
	Title     string   `json:"title" db:"title"`
	Published int32    `json:"published" db:"published"`
	Genres    []string `json:"genres" db:"genres"`
	AuthorKey int64    `json:"-" db:"author_id"`

	// Author is populated by reads that join the author record.
	Author *authorModel.Author `json:"author,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ID returns the stable external identifier.
func (b *Book) ID() string {
	return identifier.Encode(b.Key)
}

// Validate checks the constraints enforced before every write.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title,
			validation.Required.Error("book title is required"),
			validation.RuneLength(MinTitleLength, 0),
		),
		validation.Field(&b.Genres, validation.NotNil.Error("genres are required")),
		validation.Field(&b.AuthorKey, validation.Required.Error("author is required")),
	)
}

// BookFilter - allBooks arguments. Nil fields do not filter.
type BookFilter struct {
	Genre      *string
	AuthorName *string
}

// Normalize drops empty filter values; an empty genre or author name
// selects every book.
func (f BookFilter) Normalize() BookFilter {
	if f.Genre != nil && *f.Genre == "" {
		f.Genre = nil
	}
	if f.AuthorName != nil && *f.AuthorName == "" {
		f.AuthorName = nil
	}
	return f
}

// AddBookRequest - addBook mutation arguments. AuthorName is resolved to an
// author record, creating one when the catalog has not seen the name.
type AddBookRequest struct {
	Title      string
	AuthorName string
	Published  int32
	Genres     []string
}

// Args returns the arguments as reported back in validation failures.
func (r AddBookRequest) Args() map[string]any {
	return map[string]any{
		"title":     r.Title,
		"author":    r.AuthorName,
		"published": r.Published,
		"genres":    r.Genres,
	}
}
