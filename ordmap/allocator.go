package ordmap

// Storage sizes reserved for the structures a map builds.
const (
	EntrySize    = 32
	IteratorSize = 16
)

// Allocator accounts for the storage a map reserves.
type Allocator interface {
	// Alloc reserves n bytes for op or returns an *AllocationError.
	Alloc(op string, n int) error
	// Free returns n previously reserved bytes. Freeing more than was
	// reserved drives InUse negative.
	Free(n int)
	// InUse reports the bytes currently reserved.
	InUse() int
}

type unlimited struct {
	inUse int
}

// Unlimited returns an Allocator that never refuses a reservation.
func Unlimited() Allocator {
	return &unlimited{}
}

func (u *unlimited) Alloc(_ string, n int) error {
	u.inUse += n
	return nil
}

func (u *unlimited) Free(n int) {
	u.inUse -= n
}

func (u *unlimited) InUse() int {
	return u.inUse
}

// Budget is an Allocator with a fixed number of bytes.
type Budget struct {
	limit int
	inUse int
}

// NewBudget creates a Budget that refuses reservations past limit bytes.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Alloc(op string, n int) error {
	if b.inUse+n > b.limit {
		return &AllocationError{
			Op:        op,
			Requested: n,
			InUse:     b.inUse,
			Limit:     b.limit,
		}
	}
	b.inUse += n
	return nil
}

func (b *Budget) Free(n int) {
	b.inUse -= n
}

func (b *Budget) InUse() int {
	return b.inUse
}

// Limit reports the total bytes of the budget.
func (b *Budget) Limit() int {
	return b.limit
}

// Available reports the bytes that can still be reserved.
func (b *Budget) Available() int {
	return b.limit - b.inUse
}
