package flower

// memo caches a single derived value keyed by a comparable dependency tuple.
// It recomputes only when the key changes.
type memo[K comparable, V any] struct {
	key   K
	val   V
	valid bool
	runs  int
}

func (m *memo[K, V]) get(key K, compute func() V) V {
	if m.valid && m.key == key {
		return m.val
	}
	m.key, m.val, m.valid = key, compute(), true
	m.runs++
	return m.val
}

