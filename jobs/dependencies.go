// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Institute of the Czech National Corpus,
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
	"errors"
	"time"
)

var (
	ErrorNoSuchJobDependency   = errors.New("no such dependency")
	ErrorCircularJobDependency = errors.New("circular job dependency")
	ErrorDuplicateDependency   = errors.New("duplicate dependency")
)

// ParentState is a state of a job other jobs wait for
type ParentState int

const (
	ParentRunning ParentState = iota
	ParentSucceeded
	ParentFailed
)

func (s ParentState) String() string {
	switch s {
	case ParentSucceeded:
		return "succeeded"
	case ParentFailed:
		return "failed"
	default:
		return "running"
	}
}

func parentStateOf(job GeneralJobInfo) ParentState {
	if !job.IsFinished() {
		return ParentRunning
	}
	if job.GetError() != nil {
		return ParentFailed
	}
	return ParentSucceeded
}

// ParentInfo describes a job another job waits for
// (typically an export a database import waits for).
type ParentInfo struct {
	JobID   string    `json:"jobId"`
	JobType string    `json:"jobType"`
	State   string    `json:"state"`
	AddedAt time.Time `json:"addedAt"`
}

type parentRecord struct {
	jobID   string
	jobType string
	addedAt time.Time
	state   ParentState
}

// JobsDeps maps a job ID to records of the jobs it waits for
type JobsDeps map[string][]*parentRecord

// Add registers the parent as a dependency of jobID. In case
// the parent is already finished, its final state is recorded
// right away.
func (jd JobsDeps) Add(jobID string, parent GeneralJobInfo) error {
	parentID := parent.GetID()
	for _, rec := range jd[jobID] {
		if rec.jobID == parentID {
			return ErrorDuplicateDependency
		}
	}
	if parentID == jobID || jd.dependsOn(parentID, jobID) {
		return ErrorCircularJobDependency
	}
	jd[jobID] = append(jd[jobID], &parentRecord{
		jobID:   parentID,
		jobType: parent.GetType(),
		addedAt: time.Now(),
		state:   parentStateOf(parent),
	})
	return nil
}

// dependsOn tests whether jobID (transitively) waits for ancestorID
func (jd JobsDeps) dependsOn(jobID, ancestorID string) bool {
	visited := make(map[string]bool)
	stack := []string{jobID}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[curr] {
			continue
		}
		visited[curr] = true
		for _, rec := range jd[curr] {
			if rec.jobID == ancestorID {
				return true
			}
			stack = append(stack, rec.jobID)
		}
	}
	return false
}

// SetParentFinished marks the parent job as finished in all
// the dependency records it is part of.
func (jd JobsDeps) SetParentFinished(parentID string, failed bool) error {
	state := ParentSucceeded
	if failed {
		state = ParentFailed
	}
	var found bool
	for _, parents := range jd {
		for _, rec := range parents {
			if rec.jobID == parentID {
				rec.state = state
				found = true
			}
		}
	}
	if !found {
		return ErrorNoSuchJobDependency
	}
	return nil
}

// MustWait tests whether jobID must wait because some of its
// parents are still running and none of them failed.
// In case no dependency is defined for jobID, ErrorNoSuchJobDependency
// is returned.
func (jd JobsDeps) MustWait(jobID string) (bool, error) {
	parents, ok := jd[jobID]
	if !ok {
		return false, ErrorNoSuchJobDependency
	}
	var someRunning bool
	for _, rec := range parents {
		switch rec.state {
		case ParentFailed:
			return false, nil
		case ParentRunning:
			someRunning = true
		}
	}
	return someRunning, nil
}

func (jd JobsDeps) HasFailedParent(jobID string) (bool, error) {
	parents, ok := jd[jobID]
	if !ok {
		return false, ErrorNoSuchJobDependency
	}
	for _, rec := range parents {
		if rec.state == ParentFailed {
			return true, nil
		}
	}
	return false, nil
}

// Parents returns the jobs jobID waits (or waited) for
func (jd JobsDeps) Parents(jobID string) []ParentInfo {
	parents := jd[jobID]
	ans := make([]ParentInfo, len(parents))
	for i, rec := range parents {
		ans[i] = ParentInfo{
			JobID:   rec.jobID,
			JobType: rec.jobType,
			State:   rec.state.String(),
			AddedAt: rec.addedAt,
		}
	}
	return ans
}
