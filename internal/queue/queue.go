/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package queue is the task queue of spec.md §4.3: a singly-linked
// ordered collection of task records with a selection policy and
// producer/consumer signalling, grounded on
// original_source/phase-4/scheduler.c's task_queue/add_task/
// get_next_task.
package queue

import (
	"sync"

	"github.com/akoQassym/remote-shell-go/internal/task"
)

// node wraps a *task.Record with the intrusive next pointer the
// singly-linked queue needs; task.Record itself stays free of
// queue-internal bookkeeping.
type node struct {
	record *task.Record
	next   *node
}

// Queue is a FIFO-ordered, mutex-and-condvar-guarded collection of
// task.Records implementing the RR-before-SJF selection policy of
// spec.md §4.3.
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	front *node
	rear  *node
}

// New returns an empty Queue ready for use.
func New() (q *Queue) {
	q = &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return
}

// Enqueue appends record at the rear and wakes one blocked Select.
func (q *Queue) Enqueue(record *task.Record) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var n = &node{record: record}
	if q.rear == nil {
		q.front, q.rear = n, n
	} else {
		q.rear.next = n
		q.rear = n
	}
	q.cond.Signal()
}

// Select blocks until the queue is non-empty, then unlinks and
// returns the task chosen by the RR-before-SJF policy:
//  1. the first node with RoundCount == 0, scanning from the front;
//  2. otherwise the node with the smallest RemainingTime, ties broken
//     by earliest arrival.
func (q *Queue) Select() (record *task.Record) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.front == nil {
		q.cond.Wait()
	}

	var selected, selectedPrev *node
	var prev *node
	for current := q.front; current != nil; current = current.next {
		if current.record.IsFirstRound() {
			selected, selectedPrev = current, prev
			break
		}
		prev = current
	}

	if selected == nil {
		prev = nil
		for current := q.front; current != nil; current = current.next {
			if selected == nil || current.record.RemainingTime < selected.record.RemainingTime {
				selected, selectedPrev = current, prev
			}
			prev = current
		}
	}

	q.unlink(selected, selectedPrev)
	record = selected.record
	return
}

// RemoveWhere unlinks and returns every record matching pred, without
// signalling waiters; used for cancellation, spec.md §4.5.
func (q *Queue) RemoveWhere(pred func(*task.Record) bool) (removed []*task.Record) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var prev *node
	var current = q.front
	for current != nil {
		var next = current.next
		if pred(current.record) {
			removed = append(removed, current.record)
			q.unlink(current, prev)
		} else {
			prev = current
		}
		current = next
	}
	return
}

// unlink removes n from the list given its predecessor (nil if n is
// the front). Caller must hold q.mu.
func (q *Queue) unlink(n, prev *node) {
	if prev == nil {
		q.front = n.next
	} else {
		prev.next = n.next
	}
	if n == q.rear {
		q.rear = prev
	}
}
