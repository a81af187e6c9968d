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
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitTimeout = 3 * time.Second
	waitTick    = 10 * time.Millisecond
)

func newTestActions(t *testing.T, maxJobs int, lang string) *Actions {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewActions(&Conf{MaxNumConcurrentJobs: maxJobs}, lang, ctx)
}

// blockingJob creates a job which finishes once the release channel
// is closed or a value is sent to it. A non-nil value means failure.
func blockingJob(info testJobInfo, release <-chan error, started *atomic.Bool) *QueuedFunc {
	fn := func(ctx context.Context, upds chan<- GeneralJobInfo) {
		defer close(upds)
		if started != nil {
			started.Store(true)
		}
		select {
		case err := <-release:
			if err != nil {
				upds <- info.WithError(err)
				return
			}
			info.Payload = "done"
			upds <- info.AsFinished()
		case <-ctx.Done():
		}
	}
	return &fn
}

func isFinished(a *Actions, jobID string) func() bool {
	return func() bool {
		job, ok := a.GetJob(jobID)
		return ok && job.IsFinished()
	}
}

func TestRunSingleJob(t *testing.T) {
	a := newTestActions(t, 2, "en")
	release := make(chan error)
	close(release)
	a.EnqueueJob(blockingJob(newTestJob("job1"), release, nil), newTestJob("job1"))
	require.Eventually(t, isFinished(a, "job1"), waitTimeout, waitTick)
	job, _ := a.GetJob("job1")
	assert.NoError(t, job.GetError())
	assert.True(t, job.CompactVersion().OK)
}

func TestConcurrencyLimit(t *testing.T) {
	a := newTestActions(t, 1, "en")
	release1 := make(chan error)
	release2 := make(chan error)
	var started2 atomic.Bool
	a.EnqueueJob(blockingJob(newTestJob("job1"), release1, nil), newTestJob("job1"))
	a.EnqueueJob(blockingJob(newTestJob("job2"), release2, &started2), newTestJob("job2"))

	require.Eventually(t, func() bool {
		u := a.GetUtilization()
		return u.NumRunning == 1 && u.NumQueued == 1
	}, waitTimeout, waitTick)
	assert.False(t, started2.Load())
	assert.Equal(t, 1.0, a.GetUtilization().Load)

	close(release1)
	require.Eventually(t, isFinished(a, "job1"), waitTimeout, waitTick)
	require.Eventually(t, started2.Load, waitTimeout, waitTick)
	close(release2)
	require.Eventually(t, isFinished(a, "job2"), waitTimeout, waitTick)
	assert.Eventually(t, func() bool {
		return a.GetUtilization() == Utilization{MaxNumConcurrentJobs: 1}
	}, waitTimeout, waitTick)
}

func TestDependentJobRunsAfterParent(t *testing.T) {
	a := newTestActions(t, 2, "en")
	releaseParent := make(chan error)
	releaseChild := make(chan error)
	close(releaseChild)
	var childStarted atomic.Bool
	a.EnqueueJob(blockingJob(newTestJob("parent"), releaseParent, nil), newTestJob("parent"))
	err := a.EnqueueJobAfter(
		blockingJob(newTestJob("child"), releaseChild, &childStarted), newTestJob("child"), "parent")
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, childStarted.Load())

	close(releaseParent)
	require.Eventually(t, isFinished(a, "child"), waitTimeout, waitTick)
	assert.True(t, childStarted.Load())
	child, _ := a.GetJob("child")
	assert.NoError(t, child.GetError())
}

func TestDependentJobFailsWithParent(t *testing.T) {
	a := newTestActions(t, 2, "en")
	releaseParent := make(chan error, 1)
	var childStarted atomic.Bool
	a.EnqueueJob(blockingJob(newTestJob("parent"), releaseParent, nil), newTestJob("parent"))
	err := a.EnqueueJobAfter(
		blockingJob(newTestJob("child"), make(chan error), &childStarted), newTestJob("child"), "parent")
	require.NoError(t, err)

	releaseParent <- errors.New("export failed")
	require.Eventually(t, isFinished(a, "child"), waitTimeout, waitTick)
	assert.False(t, childStarted.Load())
	child, _ := a.GetJob("child")
	assert.True(t, errors.Is(child.GetError(), ErrParentJobFailed))
}

func TestEnqueueAfterUnknownJob(t *testing.T) {
	a := newTestActions(t, 2, "en")
	err := a.EnqueueJobAfter(
		blockingJob(newTestJob("child"), nil, nil), newTestJob("child"), "nonexistent")
	assert.True(t, errors.Is(err, ErrJobNotFound))
	_, ok := a.GetJob("child")
	assert.False(t, ok)
}

func TestCancelRunningJob(t *testing.T) {
	a := newTestActions(t, 1, "en")
	var started atomic.Bool
	a.EnqueueJob(blockingJob(newTestJob("job1"), make(chan error), &started), newTestJob("job1"))
	require.Eventually(t, started.Load, waitTimeout, waitTick)

	_, err := a.CancelJob("job1")
	require.NoError(t, err)
	require.Eventually(t, isFinished(a, "job1"), waitTimeout, waitTick)
	job, _ := a.GetJob("job1")
	assert.True(t, errors.Is(job.GetError(), ErrJobCancelled))
}

func TestCancelQueuedJob(t *testing.T) {
	a := newTestActions(t, 1, "en")
	release := make(chan error)
	var started2 atomic.Bool
	a.EnqueueJob(blockingJob(newTestJob("job1"), release, nil), newTestJob("job1"))
	a.EnqueueJob(blockingJob(newTestJob("job2"), make(chan error), &started2), newTestJob("job2"))
	require.Eventually(t, func() bool {
		return a.GetUtilization().NumRunning == 1
	}, waitTimeout, waitTick)

	job, err := a.CancelJob("job2")
	require.NoError(t, err)
	assert.True(t, job.IsFinished())
	assert.True(t, errors.Is(job.GetError(), ErrJobCancelled))
	assert.Equal(t, 0, a.GetUtilization().NumQueued)

	close(release)
	require.Eventually(t, isFinished(a, "job1"), waitTimeout, waitTick)
	assert.False(t, started2.Load())

	// deleting a finished job removes it
	_, err = a.CancelJob("job2")
	assert.NoError(t, err)
	_, ok := a.GetJob("job2")
	assert.False(t, ok)
	_, err = a.CancelJob("job2")
	assert.True(t, errors.Is(err, ErrJobNotFound))
}

func TestClearJobIfFinished(t *testing.T) {
	a := newTestActions(t, 1, "en")
	release := make(chan error)
	a.EnqueueJob(blockingJob(newTestJob("job1"), release, nil), newTestJob("job1"))

	_, removed, err := a.ClearJobIfFinished("job1")
	assert.NoError(t, err)
	assert.False(t, removed)

	close(release)
	require.Eventually(t, isFinished(a, "job1"), waitTimeout, waitTick)
	_, removed, err = a.ClearJobIfFinished("job1")
	assert.NoError(t, err)
	assert.True(t, removed)

	_, _, err = a.ClearJobIfFinished("job1")
	assert.True(t, errors.Is(err, ErrJobNotFound))
}

func TestLastUnfinishedJobOfType(t *testing.T) {
	a := newTestActions(t, 1, "en")
	job1 := newTestJob("job1")
	job1.Start = JSONTime(time.Now().Add(-time.Minute))
	job2 := newTestJob("job2")
	a.EnqueueJob(blockingJob(job1, make(chan error), nil), job1)
	a.EnqueueJob(blockingJob(job2, make(chan error), nil), job2)

	id, ok := a.LastUnfinishedJobOfType("fn17", testJobType)
	assert.True(t, ok)
	assert.Equal(t, "job2", id)
	_, ok = a.LastUnfinishedJobOfType("fn15", testJobType)
	assert.False(t, ok)
	_, ok = a.LastUnfinishedJobOfType("fn17", JobTypeDBImport)
	assert.False(t, ok)
}

func TestListJobsLocalized(t *testing.T) {
	a := newTestActions(t, 1, "cs")
	job1 := newTestJob("job1")
	job1.Start = JSONTime(time.Now().Add(-time.Minute))
	a.EnqueueJob(blockingJob(job1, make(chan error), nil), job1)
	a.EnqueueJob(blockingJob(newTestJob("job2"), make(chan error), nil), newTestJob("job2"))

	list := a.ListJobs(false)
	require.Len(t, list, 2)
	assert.Equal(t, "job1", list[0].ID)
	assert.Equal(t, "job2", list[1].ID)
	assert.Equal(t, "Neznámá úloha", list[0].Desc)
	assert.Equal(t, "Úloha běží", list[1].StatusMsg)
	assert.Equal(t, "fn17", list[0].DatasetID)
}

func TestListJobsShowsParents(t *testing.T) {
	a := newTestActions(t, 2, "en")
	export := newTypedJob("export1", JobTypeToolInputExport)
	a.EnqueueJob(blockingJob(export, make(chan error), nil), export)
	dbImport := newTypedJob("import1", JobTypeDBImport)
	require.NoError(t, a.EnqueueJobAfter(blockingJob(dbImport, make(chan error), nil), dbImport, "export1"))

	list := a.ListJobs(true)
	require.Len(t, list, 2)
	var item JobInfoCompact
	for _, v := range list {
		if v.ID == "import1" {
			item = v
		}
	}
	require.Len(t, item.WaitsFor, 1)
	assert.Equal(t, "export1", item.WaitsFor[0].JobID)
	assert.Equal(t, JobTypeToolInputExport, item.WaitsFor[0].JobType)
	assert.Equal(t, "running", item.WaitsFor[0].State)
}

func TestEnqueueAfterFailedJob(t *testing.T) {
	a := newTestActions(t, 2, "en")
	release := make(chan error, 1)
	release <- errors.New("export failed")
	export := newTypedJob("export1", JobTypeToolInputExport)
	a.EnqueueJob(blockingJob(export, release, nil), export)
	require.Eventually(t, isFinished(a, "export1"), waitTimeout, waitTick)

	var started atomic.Bool
	dbImport := newTypedJob("import1", JobTypeDBImport)
	require.NoError(t, a.EnqueueJobAfter(blockingJob(dbImport, make(chan error), &started), dbImport, "export1"))
	require.Eventually(t, isFinished(a, "import1"), waitTimeout, waitTick)
	job, _ := a.GetJob("import1")
	assert.ErrorIs(t, job.GetError(), ErrParentJobFailed)
	assert.False(t, started.Load())
}
