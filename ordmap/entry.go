package ordmap

// Entry is one key/value pair of a map, linked into insertion order.
type Entry struct {
	prev  *Entry
	next  *Entry
	key   string
	value int
	// bytes reserved for key
	keySize int
}

func (e *Entry) Key() string {
	return e.key
}

func (e *Entry) Value() int {
	return e.value
}

// Next returns the entry put after e, or nil if e is the tail.
func (e *Entry) Next() *Entry {
	return e.next
}

// Prev returns the entry put before e, or nil if e is the head.
func (e *Entry) Prev() *Entry {
	return e.prev
}

func (e *Entry) insertAfter(newEntry *Entry) {
	newEntry.next = e.next
	newEntry.prev = e
	if e.next != nil {
		e.next.prev = newEntry
	}
	e.next = newEntry
}

func (e *Entry) unlink() {
	e.prev = nil
	e.next = nil
}
