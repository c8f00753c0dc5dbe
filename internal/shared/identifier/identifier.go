// Package identifier maps internal storage keys to the opaque external ids
// exposed on the graph API.
//
// A storage key is the auto-incrementing integer the store assigns on insert.
// The external id is the key rendered as a fixed-width 24 digit lower-case
// hex string, so ids look the same regardless of the storage driver.
package identifier

import (
	"errors"
	"fmt"
	"strconv"
)

// Length is the length of every external id.
const Length = 24

// ErrMalformed is returned by Decode for strings that were not produced by Encode.
var ErrMalformed = errors.New("malformed identifier")

// Encode converts a storage key into its external id.
func Encode(key int64) string {
	return fmt.Sprintf("%0*x", Length, key)
}

// Decode converts an external id back into a storage key.
func Decode(id string) (int64, error) {
	if len(id) != Length {
		return 0, ErrMalformed
	}
	key, err := strconv.ParseInt(id, 16, 64)
	if err != nil || key <= 0 || Encode(key) != id {
		return 0, ErrMalformed
	}
	return key, nil
}
