package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared/identifier"
)

// Constants for validation
const MinNameLength = 4

// Author is a catalog author. Authors are created implicitly when a book
// names an author the catalog has not seen yet, and are never deleted.
type Author struct {
	Key  int64  `json:"-" db:"id"`
	Name string `json:"name" db:"name"` // unique
	Born *int32 `json:"born" db:"born"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ID returns the stable external identifier.
func (a *Author) ID() string {
	return identifier.Encode(a.Key)
}

// Validate checks the constraints enforced before every write.
func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name,
			validation.Required.Error("author name is required"),
			validation.RuneLength(MinNameLength, 0),
		),
	)
}

// WithoutBorn returns a copy of the author with born cleared.
func (a Author) WithoutBorn() *Author {
	a.Born = nil
	return &a
}

// EditAuthorRequest - editAuthor mutation arguments. A nil SetBornTo clears born.
type EditAuthorRequest struct {
	Name      string
	SetBornTo *int32
}

// Args returns the arguments as reported back in validation failures.
func (r EditAuthorRequest) Args() map[string]any {
	args := map[string]any{"name": r.Name, "setBornTo": nil}
	if r.SetBornTo != nil {
		args["setBornTo"] = *r.SetBornTo
	}
	return args
}
