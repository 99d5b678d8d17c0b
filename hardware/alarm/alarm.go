// This file is part of Raster8.
//
// Raster8 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Raster8 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Raster8.  If not, see <https://www.gnu.org/licenses/>.

// Package alarm implements the absolute-clock scheduler that drives the video
// chip. An alarm of each Kind is either unset or armed for a single trigger
// cycle. Dispatch() fires every alarm whose trigger is at or before the
// current clock, earliest first.
//
// Alarms that trigger on the same cycle are fired in Kind order. Handlers are
// free to set or unset any alarm, including the one being fired. An alarm
// that is set to a cycle that has already passed fires on the next call to
// Dispatch().
package alarm

import (
	"container/heap"
	"fmt"
	"math"
)

// Cycle is an absolute count of processor clock cycles.
type Cycle uint64

// Never is the trigger value of an unset alarm.
const Never Cycle = math.MaxUint64

// Kind identifies an alarm. The ordering of the values is significant and
// breaks ties between alarms that trigger on the same cycle.
type Kind int

// List of valid Kind values.
const (
	Fetch Kind = iota
	Draw
	RasterIRQ
	NumKinds
)

func (k Kind) String() string {
	switch k {
	case Fetch:
		return "fetch"
	case Draw:
		return "draw"
	case RasterIRQ:
		return "raster irq"
	}
	return fmt.Sprintf("unknown alarm (%d)", int(k))
}

// Handler is called when an alarm fires. The offset argument is the number
// of cycles between the trigger and the cycle at which the alarm was
// dispatched.
type Handler func(offset Cycle)

type entry struct {
	kind    Kind
	trigger Cycle
}

// queue implements heap.Interface. index is maintained so that an entry can
// be fixed or removed without a search.
type queue struct {
	entries []entry
	index   [NumKinds]int
}

func (q *queue) Len() int {
	return len(q.entries)
}

func (q *queue) Less(i, j int) bool {
	if q.entries[i].trigger == q.entries[j].trigger {
		return q.entries[i].kind < q.entries[j].kind
	}
	return q.entries[i].trigger < q.entries[j].trigger
}

func (q *queue) Swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	q.index[q.entries[i].kind] = i
	q.index[q.entries[j].kind] = j
}

func (q *queue) Push(x any) {
	e := x.(entry)
	q.index[e.kind] = len(q.entries)
	q.entries = append(q.entries, e)
}

func (q *queue) Pop() any {
	e := q.entries[len(q.entries)-1]
	q.entries = q.entries[:len(q.entries)-1]
	q.index[e.kind] = -1
	return e
}

// Scheduler holds one alarm of each Kind. The zero value is not usable, use
// NewScheduler().
type Scheduler struct {
	q        queue
	handlers [NumKinds]Handler
}

// NewScheduler is the preferred method of initialisation for the Scheduler type.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	s.q.entries = make([]entry, 0, NumKinds)
	for i := range s.q.index {
		s.q.index[i] = -1
	}
	return s
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("fetch=%s draw=%s irq=%s",
		format(s.Trigger(Fetch)), format(s.Trigger(Draw)), format(s.Trigger(RasterIRQ)))
}

func format(c Cycle) string {
	if c == Never {
		return "never"
	}
	return fmt.Sprintf("%d", c)
}

// Register the handler for an alarm kind. Registering a handler does not set
// the alarm.
func (s *Scheduler) Register(kind Kind, handler Handler) {
	s.handlers[kind] = handler
}

// Set the alarm to trigger at the specified cycle, replacing any existing
// trigger for the alarm.
func (s *Scheduler) Set(kind Kind, trigger Cycle) {
	if trigger == Never {
		s.Unset(kind)
		return
	}
	if i := s.q.index[kind]; i >= 0 {
		s.q.entries[i].trigger = trigger
		heap.Fix(&s.q, i)
		return
	}
	heap.Push(&s.q, entry{kind: kind, trigger: trigger})
}

// Unset the alarm. Unsetting an alarm that is not set is not an error.
func (s *Scheduler) Unset(kind Kind) {
	if i := s.q.index[kind]; i >= 0 {
		heap.Remove(&s.q, i)
	}
}

// UnsetAll alarms.
func (s *Scheduler) UnsetAll() {
	for k := range NumKinds {
		s.Unset(k)
	}
}

// Trigger returns the cycle the alarm will trigger on. Returns Never if the
// alarm is not set.
func (s *Scheduler) Trigger(kind Kind) Cycle {
	if i := s.q.index[kind]; i >= 0 {
		return s.q.entries[i].trigger
	}
	return Never
}

// Pending returns true if the alarm is set.
func (s *Scheduler) Pending(kind Kind) bool {
	return s.q.index[kind] >= 0
}

// Next returns the earliest trigger of all set alarms. Returns Never if no
// alarm is set.
func (s *Scheduler) Next() Cycle {
	if len(s.q.entries) == 0 {
		return Never
	}
	return s.q.entries[0].trigger
}

// Dispatch fires every alarm that triggers at or before now. Alarms set by a
// handler are also fired if they trigger at or before now. Returns the number
// of alarms fired.
func (s *Scheduler) Dispatch(now Cycle) int {
	var n int
	for len(s.q.entries) > 0 && s.q.entries[0].trigger <= now {
		e := heap.Pop(&s.q).(entry)
		n++
		if h := s.handlers[e.kind]; h != nil {
			h(now - e.trigger)
		}
	}
	return n
}
