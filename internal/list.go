// Package internal holds the recency ledger shared by the cache
// implementations: an intrusive doubly linked list whose entries double as
// the stable handles the key index points at.
package internal

// Entry is a node of LruList holding one key/value pair. An Entry is
// allocated by the list on PushFront and stays valid until removed from the
// list; the cache treats it as an opaque handle into the recency order.
type Entry[K comparable, V any] struct {
	// next and prev neighbours in the ring. The list's root sentinel closes
	// the ring, so neither is nil while the entry is in a list.
	next, prev *Entry[K, V]

	// The list this entry belongs to, nil once removed.
	list *LruList[K, V]

	Key   K
	Value V
}

// PrevEntry returns the previous list entry or nil.
func (e *Entry[K, V]) PrevEntry() *Entry[K, V] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// LruList holds entries ordered by recency of use: front is most recently
// used, back is least recently used. Every operation is O(1) and no
// operation invalidates any handle other than the one it removes.
type LruList[K comparable, V any] struct {
	root Entry[K, V] // sentinel; root.next is front, root.prev is back
	len  int
}

// Init empties the list.
func (l *LruList[K, V]) Init() *LruList[K, V] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

// NewList returns an initialized list.
func NewList[K comparable, V any]() *LruList[K, V] {
	return new(LruList[K, V]).Init()
}

// Length returns the number of entries in the list.
func (l *LruList[K, V]) Length() int {
	return l.len
}

// Back returns the least recently used entry, or nil if the list is empty.
func (l *LruList[K, V]) Back() *Entry[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// insert places e after at and adopts it into l.
func (l *LruList[K, V]) insert(e, at *Entry[K, V]) *Entry[K, V] {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.len++
	return e
}

// Remove unlinks e from the list and returns its value. The handle is dead
// afterwards; neighbouring handles are untouched.
func (l *LruList[K, V]) Remove(e *Entry[K, V]) V {
	e.prev.next = e.next
	e.next.prev = e.prev
	// avoid memory leaks through dangling neighbour pointers
	e.next = nil
	e.prev = nil
	e.list = nil
	l.len--

	return e.Value
}

// PushFront inserts a new entry carrying k and v at the most recently used
// position and returns its handle.
func (l *LruList[K, V]) PushFront(k K, v V) *Entry[K, V] {
	return l.insert(&Entry[K, V]{Key: k, Value: v}, &l.root)
}

// MoveToFront promotes e to the most recently used position by relinking
// it in place. The entry keeps its identity; no reallocation occurs.
func (l *LruList[K, V]) MoveToFront(e *Entry[K, V]) {
	if l.root.next == e {
		return
	}
	// unlink
	e.prev.next = e.next
	e.next.prev = e.prev
	// relink at front
	e.prev = &l.root
	e.next = l.root.next
	e.prev.next = e
	e.next.prev = e
}
