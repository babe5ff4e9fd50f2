package ordmap

// InitialKeyCapacity is the capacity a KeyBuffer starts with.
const InitialKeyCapacity = 10

// Growth computes the next capacity of an exhausted KeyBuffer.
type Growth func(capacity int) int

// FixedGrowth grows a buffer by n bytes each time it runs out of room.
func FixedGrowth(n int) Growth {
	if n < 1 {
		n = 1
	}
	return func(capacity int) int {
		return capacity + n
	}
}

// DoublingGrowth doubles the capacity of a buffer each time it runs out of room.
func DoublingGrowth() Growth {
	return func(capacity int) int {
		if capacity < 1 {
			return InitialKeyCapacity
		}
		return capacity * 2
	}
}

// KeyBuffer builds an owned copy of a key one byte at a time. The last slot
// of the buffer is always kept free for the terminator, so length < capacity.
type KeyBuffer struct {
	buf    []byte
	length int
	alloc  Allocator
	growth Growth
}

// NewKeyBuffer reserves an empty buffer of InitialKeyCapacity bytes.
func NewKeyBuffer(alloc Allocator, growth Growth) (*KeyBuffer, error) {
	if alloc == nil {
		alloc = Unlimited()
	}
	if growth == nil {
		growth = DoublingGrowth()
	}
	if err := alloc.Alloc("new key buffer", InitialKeyCapacity); err != nil {
		return nil, err
	}
	return &KeyBuffer{
		buf:    make([]byte, InitialKeyCapacity),
		alloc:  alloc,
		growth: growth,
	}, nil
}

// AppendByte places c where the terminator was and moves the terminator one
// slot right, growing the buffer first when it is full.
func (b *KeyBuffer) AppendByte(c byte) error {
	if b.buf == nil {
		return ErrBufferReleased
	}
	if b.length >= len(b.buf)-1 {
		if err := b.grow(); err != nil {
			return err
		}
	}
	b.buf[b.length+1] = b.buf[b.length]
	b.buf[b.length] = c
	b.length++
	return nil
}

func (b *KeyBuffer) grow() error {
	capacity := b.growth(len(b.buf))
	if capacity <= len(b.buf) {
		capacity = len(b.buf) + 1
	}
	if err := b.alloc.Alloc("grow key buffer", capacity-len(b.buf)); err != nil {
		return err
	}
	buf := make([]byte, capacity)
	copy(buf, b.buf[:b.length+1])
	b.buf = buf
	return nil
}

// Len is the number of key bytes in the buffer.
func (b *KeyBuffer) Len() int {
	return b.length
}

// Cap is the number of bytes reserved for the buffer.
func (b *KeyBuffer) Cap() int {
	return len(b.buf)
}

// String returns the key built so far.
func (b *KeyBuffer) String() string {
	return string(b.buf[:b.length])
}

// Release returns the reserved bytes to the allocator. Appending to a released
// buffer returns ErrBufferReleased.
func (b *KeyBuffer) Release() {
	if b.buf == nil {
		return
	}
	b.alloc.Free(len(b.buf))
	b.buf = nil
	b.length = 0
}

// BuildKey copies source into an owned key. On an allocation failure every
// byte reserved so far is released and no key is returned. The key keeps the
// whole buffer reserved; the returned size must be freed when it is dropped.
func BuildKey(source string, alloc Allocator, growth Growth) (string, int, error) {
	b, err := NewKeyBuffer(alloc, growth)
	if err != nil {
		return "", 0, err
	}
	for i := 0; i < len(source); i++ {
		if err := b.AppendByte(source[i]); err != nil {
			b.Release()
			return "", 0, err
		}
	}
	key := b.String()
	return key, b.Cap(), nil
}
