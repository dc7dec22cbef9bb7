// internal/sched/arrival.go

package sched

import "iter"

// NodeHandle identifies a node inside an ArrivalList. It is a slot index into
// the list's backing arena, not a pointer.
type NodeHandle int

const nilNode = -1

type listNode struct {
	task Task
	prev int
	next int
}

// ArrivalList keeps tasks in the order they were appended. Nodes live in an
// arena slice and link to each other by index; freed slots are recycled.
type ArrivalList struct {
	nodes []listNode
	free  []int // recycled slots
	head  int
	tail  int
	size  int
}

// NewArrivalList returns an empty list.
func NewArrivalList() *ArrivalList {
	return &ArrivalList{head: nilNode, tail: nilNode}
}

// Append links t at the tail and returns its handle.
func (l *ArrivalList) Append(t Task) NodeHandle {
	n := listNode{task: t, prev: l.tail, next: nilNode}

	var slot int
	if k := len(l.free); k > 0 {
		slot = l.free[k-1]
		l.free = l.free[:k-1]
		l.nodes[slot] = n
	} else {
		slot = len(l.nodes)
		l.nodes = append(l.nodes, n)
	}

	if l.tail == nilNode {
		l.head = slot
	} else {
		l.nodes[l.tail].next = slot
	}
	l.tail = slot
	l.size++
	return NodeHandle(slot)
}

// Remove unlinks the node behind h. The handle must still be linked; removing
// the same handle twice corrupts the list.
func (l *ArrivalList) Remove(h NodeHandle) {
	slot := int(h)
	n := l.nodes[slot]

	if n.prev == nilNode {
		l.head = n.next
	} else {
		l.nodes[n.prev].next = n.next
	}
	if n.next == nilNode {
		l.tail = n.prev
	} else {
		l.nodes[n.next].prev = n.prev
	}

	l.nodes[slot] = listNode{prev: nilNode, next: nilNode}
	l.free = append(l.free, slot)
	l.size--
}

// Task returns the task stored behind a linked handle.
func (l *ArrivalList) Task(h NodeHandle) Task {
	return l.nodes[int(h)].task
}

// All yields the linked tasks from head to tail. The walk reads live state,
// so it must not be interleaved with Append or Remove.
func (l *ArrivalList) All() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for cur := l.head; cur != nilNode; cur = l.nodes[cur].next {
			if !yield(l.nodes[cur].task) {
				return
			}
		}
	}
}

// IsEmpty reports whether no nodes are linked.
func (l *ArrivalList) IsEmpty() bool { return l.size == 0 }

// Len returns the number of linked nodes.
func (l *ArrivalList) Len() int { return l.size }
