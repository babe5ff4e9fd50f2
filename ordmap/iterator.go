package ordmap

import (
	"github.com/emirpasic/gods/v2/lists/arraylist"
	"github.com/pkg/errors"
)

// Iterator walks the entries a map held when the iterator was created. Values
// put afterwards are seen, keys added afterwards are not. Once exhausted it
// stays exhausted; call Iterate again to scan again.
type Iterator struct {
	m        *OrderedMap
	entries  *arraylist.List[*Entry]
	pos      int
	err      error
	disposed bool
}

func (m *OrderedMap) newIterator(start *Entry, step func(*Entry) *Entry) (*Iterator, error) {
	if m.deleted {
		return nil, ErrMapDeleted
	}
	if err := m.alloc.Alloc("new iterator", IteratorSize); err != nil {
		return nil, errors.Wrap(err, "iterate")
	}
	entries := arraylist.New[*Entry]()
	for e := start; e != nil; e = step(e) {
		entries.Add(e)
	}
	return &Iterator{
		m:       m,
		entries: entries,
	}, nil
}

// Next returns the next entry, or false once the iterator is exhausted, was
// disposed or its map was deleted.
func (it *Iterator) Next() (*Entry, bool) {
	if it.disposed || it.err != nil {
		return nil, false
	}
	if it.pos >= it.entries.Size() {
		return nil, false
	}
	if it.m.deleted {
		it.err = ErrMapDeleted
		it.entries.Clear()
		return nil, false
	}
	e, _ := it.entries.Get(it.pos)
	it.pos++
	return e, true
}

// Remaining is the number of entries Next has yet to return.
func (it *Iterator) Remaining() int {
	if it.disposed || it.err != nil || it.m.deleted || it.pos >= it.entries.Size() {
		return 0
	}
	return it.entries.Size() - it.pos
}

// Err returns ErrMapDeleted if the map was deleted while iterating.
func (it *Iterator) Err() error {
	return it.err
}

// Dispose releases the iterator. The map and its entries are not affected.
func (it *Iterator) Dispose() {
	if it.disposed {
		return
	}
	it.disposed = true
	it.entries.Clear()
	it.m.alloc.Free(IteratorSize)
}
