//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package alertqueue implements the Alert Queue (spec §4.C): a strict FIFO
// of alert records with push/pop/is-empty/teardown, safe to tear down from
// underneath concurrent producers. A popped alert is an ordinary Go value,
// so there is no separate free operation.
//
// The original uses a non-sleeping spin lock because producers run at
// elevated IRQ levels in kernel mode. A Go process has no such execution
// context, so per §9's re-architecture guidance this is ported as a plain
// sync.Mutex rather than a literal spinlock -- the ordering and teardown
// guarantees are preserved exactly, only the lock primitive changes.
package alertqueue

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// Queue is a FIFO of domain.Alert values.
type Queue struct {
	mu          sync.Mutex
	items       *list.List
	tearingDown atomic.Bool
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{items: list.New()}
}

// Push enqueues alert at the tail. A no-op once Teardown has run.
func (q *Queue) Push(alert domain.Alert) {
	if q.tearingDown.Load() {
		return
	}
	q.mu.Lock()
	q.items.PushBack(alert)
	q.mu.Unlock()
}

// Pop removes and returns the head, transferring ownership to the caller.
// Returns false if the queue is empty or torn down.
func (q *Queue) Pop() (domain.Alert, bool) {
	if q.tearingDown.Load() {
		return domain.Alert{}, false
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	front := q.items.Front()
	if front == nil {
		return domain.Alert{}, false
	}
	q.items.Remove(front)
	return front.Value.(domain.Alert), true
}

// IsEmpty reports whether the queue currently has no entries.
func (q *Queue) IsEmpty() bool {
	if q.tearingDown.Load() {
		return true
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len() == 0
}

// Teardown sets the teardown flag, drains and discards all remaining
// entries under the lock, and makes every subsequent operation a no-op.
func (q *Queue) Teardown() {
	q.tearingDown.Store(true)
	q.mu.Lock()
	q.items.Init()
	q.mu.Unlock()
	logrus.Debug("alertqueue: torn down")
}
