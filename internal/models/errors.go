package models

import "errors"

// ErrNotFound is returned by lookups when no record carries the id.
// Deletes do not cascade, so callers are expected to degrade to a
// placeholder rather than fail.
var ErrNotFound = errors.New("not found")

// UnknownClientName is shown wherever a quotation references a client that
// no longer exists.
const UnknownClientName = "Desconocido"
