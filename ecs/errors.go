package ecs

import "errors"

// ErrMissingSingleton is returned (or panicked with) when a system requires a
// singleton that has not been added to storage.
var ErrMissingSingleton = errors.New("ecs: missing singleton")
