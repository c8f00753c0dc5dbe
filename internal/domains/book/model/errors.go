package model

import "errors"

var ErrAuthorNotFound = errors.New("referenced author does not exist")
