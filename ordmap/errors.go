package ordmap

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAllocation is matched by every AllocationError.
	ErrAllocation = errors.New("could not allocate memory")
	// ErrMapDeleted is returned by operations on a map that was already deleted.
	ErrMapDeleted = errors.New("map was deleted")
	// ErrBufferReleased is returned when a released KeyBuffer is written to.
	ErrBufferReleased = errors.New("key buffer was released")
)

// AllocationError reports a reservation the allocator refused.
type AllocationError struct {
	Op        string
	Requested int
	InUse     int
	Limit     int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s: %v (requested %d bytes, %d/%d in use)", e.Op, ErrAllocation, e.Requested, e.InUse, e.Limit)
}

func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}
