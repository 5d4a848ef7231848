package tabular

// Cell is one key/value pair of a record. For headered input Key is the
// trimmed header name; otherwise it is the zero-based column index.
type Cell struct {
	Key   string
	Value string
}

// Record is one parsed row. Cells keep column order; short rows simply have
// fewer cells, and cells past the header width carry ExtraKey.
type Record struct {
	Cells []Cell
	last  map[string]int
}

func newRecord(cells []Cell) Record {
	last := make(map[string]int, len(cells))
	for i, c := range cells {
		last[c.Key] = i
	}
	return Record{Cells: cells, last: last}
}

// Get returns the value stored under key. For duplicate keys the last
// occurrence wins. ok is false when the cell is absent.
func (r Record) Get(key string) (value string, ok bool) {
	i, ok := r.index(key)
	if !ok {
		return "", false
	}
	return r.Cells[i].Value, true
}

func (r Record) index(key string) (int, bool) {
	if r.last != nil {
		i, ok := r.last[key]
		return i, ok
	}
	for i := len(r.Cells) - 1; i >= 0; i-- {
		if r.Cells[i].Key == key {
			return i, true
		}
	}
	return 0, false
}

// Shadowed reports whether the cell at position i is hidden by a later cell
// with the same key.
func (r Record) Shadowed(i int) bool {
	if i < 0 || i >= len(r.Cells) {
		return false
	}
	j, _ := r.index(r.Cells[i].Key)
	return j != i
}
