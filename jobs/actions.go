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
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	queueCheckInterval = 2 * time.Second
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrJobCancelled    = errors.New("job cancelled")
	ErrParentJobFailed = errors.New("parent job failed")
)

// Conf configures job execution
type Conf struct {
	MaxNumConcurrentJobs int `json:"maxNumConcurrentJobs"`
}

// Utilization describes current load of the job runner
type Utilization struct {
	MaxNumConcurrentJobs int     `json:"maxNumConcurrentJobs"`
	NumRunning           int     `json:"numRunning"`
	NumQueued            int     `json:"numQueued"`
	Load                 float64 `json:"load"`
}

// Actions keeps track of all the jobs (queued, running, finished)
// and runs queued jobs with respect to the maximum number of
// concurrent jobs and to job dependencies. It also provides
// HTTP actions for job management.
type Actions struct {
	conf       *Conf
	printer    *message.Printer
	mu         sync.Mutex
	jobList    map[string]GeneralJobInfo
	jobQueue   *JobQueue
	jobDeps    JobsDeps
	numRunning int
	cancelFns  map[string]context.CancelFunc
	wakeUp     chan struct{}
}

func (a *Actions) notifyQueue() {
	select {
	case a.wakeUp <- struct{}{}:
	default:
	}
}

// EnqueueJob adds a new job to the queue
func (a *Actions) EnqueueJob(fn *QueuedFunc, initialState GeneralJobInfo) {
	a.mu.Lock()
	a.jobList[initialState.GetID()] = initialState
	a.jobQueue.Enqueue(fn, initialState)
	a.mu.Unlock()
	log.Info().
		Str("jobId", initialState.GetID()).
		Str("jobType", initialState.GetType()).
		Str("datasetId", initialState.GetDatasetID()).
		Msg("enqueued job")
	a.notifyQueue()
}

// EnqueueJobAfter adds a new job to the queue. The job will not
// start before the parent job finishes. If the parent fails, the job
// fails too without being started.
func (a *Actions) EnqueueJobAfter(fn *QueuedFunc, initialState GeneralJobInfo, parentJobID string) error {
	a.mu.Lock()
	parent, ok := a.jobList[parentJobID]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("cannot enqueue job after %s: %w", parentJobID, ErrJobNotFound)
	}
	if err := a.jobDeps.Add(initialState.GetID(), parent); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("cannot enqueue job after %s: %w", parentJobID, err)
	}
	a.mu.Unlock()
	a.EnqueueJob(fn, initialState)
	return nil
}

func (a *Actions) GetJob(jobID string) (GeneralJobInfo, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.jobList[jobID]
	return v, ok
}

// LastUnfinishedJobOfType returns the ID of an unfinished job of the
// specified type and dataset. The latest started job is preferred.
func (a *Actions) LastUnfinishedJobOfType(datasetID, jobType string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var ans GeneralJobInfo
	for _, v := range a.jobList {
		if v.GetDatasetID() != datasetID || v.GetType() != jobType || v.IsFinished() {
			continue
		}
		if ans == nil || ans.GetStartDT().Before(v.GetStartDT()) {
			ans = v
		}
	}
	if ans == nil {
		return "", false
	}
	return ans.GetID(), true
}

// ListJobs returns compact information about jobs sorted
// by their start time.
func (a *Actions) ListJobs(unfinishedOnly bool) []JobInfoCompact {
	a.mu.Lock()
	defer a.mu.Unlock()
	ans := make([]JobInfoCompact, 0, len(a.jobList))
	for _, v := range a.jobList {
		if unfinishedOnly && v.IsFinished() {
			continue
		}
		item := v.CompactVersion()
		item.Desc = extractJobDescription(a.printer, v)
		item.StatusMsg = localizedStatus(a.printer, v)
		if _, waits := a.jobDeps[v.GetID()]; waits {
			item.WaitsFor = a.jobDeps.Parents(v.GetID())
		}
		ans = append(ans, item)
	}
	sort.Slice(ans, func(i, j int) bool {
		if time.Time(ans[i].Start).Equal(time.Time(ans[j].Start)) {
			return ans[i].ID < ans[j].ID
		}
		return ans[i].Start.Before(ans[j].Start)
	})
	return ans
}

func (a *Actions) GetUtilization() Utilization {
	a.mu.Lock()
	defer a.mu.Unlock()
	ans := Utilization{
		MaxNumConcurrentJobs: a.conf.MaxNumConcurrentJobs,
		NumRunning:           a.numRunning,
		NumQueued:            a.jobQueue.Size(),
	}
	if a.conf.MaxNumConcurrentJobs > 0 {
		ans.Load = float64(a.numRunning) / float64(a.conf.MaxNumConcurrentJobs)
	}
	return ans
}

// CancelJob stops a running job or removes a queued one. Finished
// jobs are removed from the job list. The returned value describes
// the state of the job after the operation.
func (a *Actions) CancelJob(jobID string) (GeneralJobInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	job, ok := a.jobList[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if job.IsFinished() {
		delete(a.jobList, jobID)
		return job, nil
	}
	if cancel, ok := a.cancelFns[jobID]; ok {
		cancel()
		return job, nil
	}
	if _, ok := a.jobQueue.Remove(jobID); ok {
		job = job.WithError(ErrJobCancelled)
		a.jobList[jobID] = job
		a.jobDeps.SetParentFinished(jobID, true)
		delete(a.jobDeps, jobID)
		a.notifyQueue()
	}
	return job, nil
}

// ClearJobIfFinished removes a finished job from the job list.
func (a *Actions) ClearJobIfFinished(jobID string) (GeneralJobInfo, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	job, ok := a.jobList[jobID]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	if job.IsFinished() {
		delete(a.jobList, jobID)
		return job, true, nil
	}
	return job, false, nil
}

func (a *Actions) setJobState(upd GeneralJobInfo) {
	a.mu.Lock()
	a.jobList[upd.GetID()] = upd
	a.mu.Unlock()
}

// startJob must be called with the mutex locked
func (a *Actions) startJob(ctx context.Context, fn *QueuedFunc, initialState GeneralJobInfo) {
	jobID := initialState.GetID()
	jobCtx, cancel := context.WithCancel(ctx)
	a.cancelFns[jobID] = cancel
	a.numRunning++
	delete(a.jobDeps, jobID)
	updates := make(chan GeneralJobInfo, 10)
	go (*fn)(jobCtx, updates)
	go func() {
		last := initialState
		for upd := range updates {
			a.setJobState(upd)
			last = upd
		}
		a.mu.Lock()
		if !last.IsFinished() {
			if jobCtx.Err() != nil {
				last = last.WithError(ErrJobCancelled)

			} else {
				last = last.AsFinished()
			}
			a.jobList[jobID] = last
		}
		a.numRunning--
		delete(a.cancelFns, jobID)
		a.jobDeps.SetParentFinished(jobID, last.GetError() != nil)
		a.mu.Unlock()
		cancel()
		if last.GetError() != nil {
			log.Error().Err(last.GetError()).Str("jobId", jobID).Msg("job finished with error")

		} else {
			log.Info().Str("jobId", jobID).Msg("job finished")
		}
		a.notifyQueue()
	}()
	log.Info().Str("jobId", jobID).Str("jobType", initialState.GetType()).Msg("started job")
}

func (a *Actions) startQueuedJobs(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for n := a.jobQueue.Size(); n > 0 && a.numRunning < a.conf.MaxNumConcurrentJobs; n-- {
		jobID, err := a.jobQueue.PeekID()
		if err != nil {
			return
		}
		if _, hasDeps := a.jobDeps[jobID]; hasDeps {
			failed, _ := a.jobDeps.HasFailedParent(jobID)
			if failed {
				_, job, _ := a.jobQueue.Dequeue()
				a.jobList[jobID] = job.WithError(ErrParentJobFailed)
				a.jobDeps.SetParentFinished(jobID, true)
				delete(a.jobDeps, jobID)
				log.Warn().Str("jobId", jobID).Msg("parent job failed, not starting the job")
				continue
			}
			mustWait, _ := a.jobDeps.MustWait(jobID)
			if mustWait {
				a.jobQueue.DelayNext()
				continue
			}
		}
		fn, job, _ := a.jobQueue.Dequeue()
		a.startJob(ctx, fn, job)
	}
}

func (a *Actions) runQueue(ctx context.Context) {
	ticker := time.NewTicker(queueCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping job queue")
			return
		case <-ticker.C:
		case <-a.wakeUp:
		}
		a.startQueuedJobs(ctx)
	}
}

// NewActions creates job actions and starts the job queue runner.
// The runner stops once the ctx is cancelled. Running jobs receive
// the cancellation via their own context.
func NewActions(conf *Conf, lang string, ctx context.Context) *Actions {
	ans := &Actions{
		conf:      conf,
		printer:   message.NewPrinter(language.Make(lang)),
		jobList:   make(map[string]GeneralJobInfo),
		jobQueue:  &JobQueue{},
		jobDeps:   make(JobsDeps),
		cancelFns: make(map[string]context.CancelFunc),
		wakeUp:    make(chan struct{}, 1),
	}
	go ans.runQueue(ctx)
	return ans
}
