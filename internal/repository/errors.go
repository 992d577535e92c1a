package repository

import "errors"

// ErrNotFound is returned by Store.Load when the key has no value. It hides
// driver specifics such as sql.ErrNoRows from the layers above.
var ErrNotFound = errors.New("repository: not found")
