package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound is the uniform failure of all registry lookups whose key was
// never registered. Failures differ only in the key space that raised them;
// use errors.Is(err, ErrNotFound) to test for any of them.
var ErrNotFound = errors.New("not registered")

// NotFoundError reports which key in which key space was missing.
type NotFoundError struct {
	KeySpace string // "entity type", "collection name", or "path name"
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q is not registered", e.KeySpace, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(keySpace, key string) error {
	return &NotFoundError{KeySpace: keySpace, Key: key}
}
