// internal/sched/priority.go

package sched

import (
	"github.com/emirpasic/gods/trees/binaryheap"
)

// EntryHandle identifies an entry inside a PriorityQueue. Like NodeHandle it is
// an arena slot index.
type EntryHandle int

type heapEntry struct {
	task  Task
	valid bool
}

// PriorityQueue orders tasks by Task.Before on top of a binary heap.
//
// Deletion is lazy: Invalidate only flips the entry's flag and the entry keeps
// its place in the heap until it surfaces at the root, where ExtractBest drops
// it. Searching the heap for the entry and removing it eagerly would cost O(n)
// per cancellation; the lazy form costs one extra pop per cancelled entry,
// paid later, which keeps every operation amortized O(log n).
type PriorityQueue struct {
	heap    *binaryheap.Heap // entry slots ordered by their tasks
	entries []heapEntry
	free    []int
	live    int
}

// QueueStats describes the physical state of a PriorityQueue.
type QueueStats struct {
	Live        int // valid entries
	Invalidated int // entries waiting to be discarded
}

// NewPriorityQueue returns an empty queue.
func NewPriorityQueue() *PriorityQueue {
	pq := &PriorityQueue{}
	pq.heap = binaryheap.NewWith(pq.cmp)
	return pq
}

// cmp ranks heap slots; the binary heap pops the smallest first.
func (pq *PriorityQueue) cmp(a, b any) int {
	ta, tb := pq.entries[a.(int)].task, pq.entries[b.(int)].task
	switch {
	case ta.Before(tb):
		return -1
	case tb.Before(ta):
		return 1
	default:
		return 0
	}
}

// Insert adds t as a valid entry and returns its handle.
func (pq *PriorityQueue) Insert(t Task) EntryHandle {
	e := heapEntry{task: t, valid: true}

	var slot int
	if k := len(pq.free); k > 0 {
		slot = pq.free[k-1]
		pq.free = pq.free[:k-1]
		pq.entries[slot] = e
	} else {
		slot = len(pq.entries)
		pq.entries = append(pq.entries, e)
	}

	pq.heap.Push(slot)
	pq.live++
	return EntryHandle(slot)
}

// Invalidate marks the entry behind h as deleted without touching the heap.
// Invalidating an already invalid entry is a no-op.
func (pq *PriorityQueue) Invalidate(h EntryHandle) {
	e := &pq.entries[int(h)]
	if !e.valid {
		return
	}
	e.valid = false
	pq.live--
}

// ExtractBest removes and returns the best ranked valid task, discarding any
// invalidated entries it pops on the way. ok is false when no valid entry is
// left.
func (pq *PriorityQueue) ExtractBest() (t Task, ok bool) {
	for {
		v, found := pq.heap.Pop()
		if !found {
			return Task{}, false
		}

		slot := v.(int)
		e := pq.entries[slot]
		pq.release(slot)
		if e.valid {
			pq.live--
			return e.task, true
		}
	}
}

// Peek returns the best ranked valid task without removing it. Invalidated
// entries found at the root are discarded.
func (pq *PriorityQueue) Peek() (t Task, ok bool) {
	for {
		v, found := pq.heap.Peek()
		if !found {
			return Task{}, false
		}

		slot := v.(int)
		if e := pq.entries[slot]; e.valid {
			return e.task, true
		}
		pq.heap.Pop()
		pq.release(slot)
	}
}

func (pq *PriorityQueue) release(slot int) {
	pq.entries[slot] = heapEntry{}
	pq.free = append(pq.free, slot)
}

// Len returns the number of valid entries.
func (pq *PriorityQueue) Len() int { return pq.live }

// Stats reports how many entries are valid and how many are still physically
// present after being invalidated.
func (pq *PriorityQueue) Stats() QueueStats {
	return QueueStats{
		Live:        pq.live,
		Invalidated: pq.heap.Size() - pq.live,
	}
}
