package ordmap

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Map is the set of operations an ordered map offers.
type Map interface {
	Put(key string, value int) error
	Get(key string, defaultValue int) int
	Find(key string) *Entry
	Size() int
	Print()
	Fprint(w io.Writer) error
	Iterate() (*Iterator, error)
	Delete()
}

var _ Map = (*OrderedMap)(nil)

// OrderedMap keeps its entries in the order their keys were first put.
type OrderedMap struct {
	head  *Entry
	tail  *Entry
	count int
	index map[string]*Entry

	alloc   Allocator
	growth  Growth
	logger  *zap.Logger
	out     io.Writer
	deleted bool
}

// Option configures an OrderedMap.
type Option func(m *OrderedMap)

// WithAllocator makes the map reserve its storage from alloc.
func WithAllocator(alloc Allocator) Option {
	return func(m *OrderedMap) {
		m.alloc = alloc
	}
}

// WithGrowth sets the growth policy of the key buffers.
func WithGrowth(growth Growth) Option {
	return func(m *OrderedMap) {
		m.growth = growth
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *OrderedMap) {
		m.logger = logger
	}
}

// WithOutput sets where Print writes to.
func WithOutput(w io.Writer) Option {
	return func(m *OrderedMap) {
		m.out = w
	}
}

// New creates an empty map.
func New(opts ...Option) *OrderedMap {
	m := &OrderedMap{
		index: map[string]*Entry{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.alloc == nil {
		m.alloc = Unlimited()
	}
	if m.growth == nil {
		m.growth = DoublingGrowth()
	}
	if m.logger == nil {
		m.logger = zap.L()
	}
	if m.out == nil {
		m.out = os.Stdout
	}
	return m
}

// Put sets the value of key. A new key is appended after the current tail, an
// existing key keeps its position. On failure the map is left as it was.
func (m *OrderedMap) Put(key string, value int) error {
	if m.deleted {
		return ErrMapDeleted
	}
	if existing := m.Find(key); existing != nil {
		existing.value = value
		return nil
	}

	if err := m.alloc.Alloc("new entry", EntrySize); err != nil {
		m.logger.Warn("could not allocate entry", zap.String("key", key), zap.Error(err))
		return errors.Wrapf(err, "put %q", key)
	}
	ownedKey, keySize, err := BuildKey(key, m.alloc, m.growth)
	if err != nil {
		m.alloc.Free(EntrySize)
		m.logger.Warn("could not allocate key", zap.String("key", key), zap.Error(err))
		return errors.Wrapf(err, "put %q", key)
	}

	newEntry := &Entry{
		key:     ownedKey,
		value:   value,
		keySize: keySize,
	}
	if m.tail == nil {
		m.head = newEntry
	} else {
		m.tail.insertAfter(newEntry)
	}
	m.tail = newEntry
	m.index[ownedKey] = newEntry
	m.count++
	return nil
}

// Get returns the value of key, or defaultValue if key was never put.
func (m *OrderedMap) Get(key string, defaultValue int) int {
	e := m.Find(key)
	if e == nil {
		return defaultValue
	}
	return e.value
}

// Find returns the entry whose key is exactly key, or nil.
func (m *OrderedMap) Find(key string) *Entry {
	return m.index[key]
}

// Size returns the number of entries.
func (m *OrderedMap) Size() int {
	return m.count
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	keys := make([]string, 0, m.count)
	for e := m.head; e != nil; e = e.next {
		keys = append(keys, e.key)
	}
	return keys
}

// Print writes the map listing to the map's output.
func (m *OrderedMap) Print() {
	if err := m.Fprint(m.out); err != nil {
		m.logger.Error("could not print map", zap.Error(err))
	}
}

// Fprint writes a header with the count followed by one "key = value" line
// per entry. An empty map is listed as "{}".
func (m *OrderedMap) Fprint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Map Count: %d\n", m.count); err != nil {
		return errors.Wrap(err, "print map")
	}
	if m.head == nil {
		_, err := io.WriteString(w, "{}\n")
		return errors.Wrap(err, "print map")
	}
	for e := m.head; e != nil; e = e.next {
		if _, err := fmt.Fprintf(w, "%s = %d\n", e.key, e.value); err != nil {
			return errors.Wrap(err, "print map")
		}
	}
	return nil
}

func (m *OrderedMap) String() string {
	var sb strings.Builder
	_ = m.Fprint(&sb)
	return sb.String()
}

// Iterate returns an iterator over the entries from head to tail.
func (m *OrderedMap) Iterate() (*Iterator, error) {
	return m.newIterator(m.head, (*Entry).Next)
}

// Reverse returns an iterator over the entries from tail to head.
func (m *OrderedMap) Reverse() (*Iterator, error) {
	return m.newIterator(m.tail, (*Entry).Prev)
}

// Delete releases every entry and its key. Deleting a nil map or a map that
// was already deleted only logs.
func (m *OrderedMap) Delete() {
	if m == nil {
		zap.L().Warn("no map to delete")
		return
	}
	if m.deleted {
		m.logger.Warn("no map to delete")
		return
	}
	current := m.head
	for current != nil {
		next := current.next
		m.alloc.Free(current.keySize)
		m.alloc.Free(EntrySize)
		current.unlink()
		current = next
	}
	m.logger.Debug("deleted map", zap.Int("entries", m.count))
	m.head = nil
	m.tail = nil
	m.count = 0
	m.index = map[string]*Entry{}
	m.deleted = true
}
