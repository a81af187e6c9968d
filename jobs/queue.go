// Copyright 2022 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2022 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jobs

import (
	"context"
	"errors"
)

var (
	ErrorEmptyQueue = errors.New("empty queue")
)

// QueuedFunc is a job body. It is expected to send job status
// updates to the provided channel and to close the channel once
// it is done. The context is cancelled in case the job is deleted
// by a user or the service is shutting down.
type QueuedFunc = func(ctx context.Context, updates chan<- GeneralJobInfo)

type JobEntry struct {
	next         *JobEntry
	job          *QueuedFunc
	initialState GeneralJobInfo
}

// JobQueue is a simple FIFO of jobs waiting for execution.
// It is not thread-safe.
type JobQueue struct {
	firstEntry *JobEntry
	lastEntry  *JobEntry
}

func (jq *JobQueue) Size() int {
	ans := 0
	for curr := jq.firstEntry; curr != nil; curr = curr.next {
		ans++
	}
	return ans
}

func (jq *JobQueue) Enqueue(item *QueuedFunc, initialState GeneralJobInfo) {
	entry := &JobEntry{
		job:          item,
		initialState: initialState,
	}
	if jq.firstEntry == nil {
		jq.firstEntry = entry
	}
	if jq.lastEntry != nil {
		jq.lastEntry.next = entry
	}
	jq.lastEntry = entry
}

// DelayNext moves the first entry to the end of the queue
func (jq *JobQueue) DelayNext() error {
	if jq.firstEntry == nil {
		return ErrorEmptyQueue
	}
	if jq.firstEntry == jq.lastEntry {
		return nil
	}
	first := jq.firstEntry
	jq.firstEntry = first.next
	first.next = nil
	jq.lastEntry.next = first
	jq.lastEntry = first
	return nil
}

func (jq *JobQueue) Dequeue() (*QueuedFunc, GeneralJobInfo, error) {
	ret := jq.firstEntry
	if ret == nil {
		return nil, nil, ErrorEmptyQueue
	}
	nxt := ret.next
	if nxt != nil {
		jq.firstEntry = nxt

	} else {
		jq.firstEntry = nil
		jq.lastEntry = nil
	}
	return ret.job, ret.initialState, nil
}

// Remove removes a job with the specified ID from the queue.
// It returns the job's initial state and true if found.
func (jq *JobQueue) Remove(jobID string) (GeneralJobInfo, bool) {
	var prev *JobEntry
	for curr := jq.firstEntry; curr != nil; curr = curr.next {
		if curr.initialState.GetID() != jobID {
			prev = curr
			continue
		}
		if prev == nil {
			jq.firstEntry = curr.next

		} else {
			prev.next = curr.next
		}
		if jq.lastEntry == curr {
			jq.lastEntry = prev
		}
		return curr.initialState, true
	}
	return nil, false
}

func (jq *JobQueue) PeekID() (string, error) {
	if jq.firstEntry == nil {
		return "", ErrorEmptyQueue
	}
	return jq.firstEntry.initialState.GetID(), nil
}

// IDs returns IDs of all the queued jobs in the order
// of their planned execution.
func (jq *JobQueue) IDs() []string {
	ans := make([]string, 0, 10)
	for curr := jq.firstEntry; curr != nil; curr = curr.next {
		ans = append(ans, curr.initialState.GetID())
	}
	return ans
}
