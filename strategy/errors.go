package strategy

import "errors"

// ErrNilSkeleton indicates that Assign was called without a partition skeleton.
var ErrNilSkeleton = errors.New("nil partition skeleton")
