package repository

import "errors"

// ErrDuplicate is returned when an insert hits a unique constraint. The
// schema is the authoritative guard for uniqueness; services translate this
// into the conflict error appropriate for the entity.
var ErrDuplicate = errors.New("duplicate record")
