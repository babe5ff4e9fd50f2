package main

import (
	"fmt"
	"io"

	"github.com/vennekilde/go-ordmap/ordmap"
)

// runDemo puts, updates, queries and iterates a map, writing everything it
// does to w.
func runDemo(w io.Writer, opts ...ordmap.Option) error {
	fmt.Fprint(w, "\nMap Class\n")
	m := ordmap.New(append(opts, ordmap.WithOutput(w))...)
	defer m.Delete()

	steps := []struct {
		key   string
		value int
		print bool
	}{
		{"a", 2, false},
		{"b", 7, true},
		{"a", 6, true},
		{"c", 8, false},
		{"d", 9, true},
	}
	m.Print()
	for _, step := range steps {
		if err := m.Put(step.key, step.value); err != nil {
			return err
		}
		if step.print {
			m.Print()
		}
	}

	fmt.Fprint(w, "\nPrint value of key, else print default value\n")
	fmt.Fprintf(w, "a = %d\n", m.Get("a", -1))
	fmt.Fprintf(w, "z = %d\n", m.Get("z", -1))

	fmt.Fprint(w, "\nIterate\n")
	it, err := m.Iterate()
	if err != nil {
		return err
	}
	defer it.Dispose()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		fmt.Fprintf(w, "%s = %d\n", e.Key(), e.Value())
	}
	return it.Err()
}
