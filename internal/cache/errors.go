package cache

import "errors"

var (
	ErrKeyNotFound      = errors.New("key not found in cache")
	ErrCapacityExceeded = errors.New("cache capacity exceeded")
	ErrInvalidCapacity  = errors.New("cache capacity must not be negative")

	// ErrSerialization and ErrLock are the kinds matched by errors.Is for
	// *SerializationError and *LockError.
	ErrSerialization = errors.New("serialize error")
	ErrLock          = errors.New("lock error")
)

// SerializationError reports data that could not be encoded or decoded.
type SerializationError struct {
	Detail string
}

func (e *SerializationError) Error() string {
	return "serialize error: " + e.Detail
}

func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// LockError reports a cache whose lock was poisoned by a panic that happened
// while the lock was held. The engine behind it may be torn, so the cache
// refuses further operations.
type LockError struct {
	Detail string
}

func (e *LockError) Error() string {
	return "lock error: " + e.Detail
}

func (e *LockError) Is(target error) bool {
	return target == ErrLock
}
