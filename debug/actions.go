// Copyright 2022 Martin Zimandl <martin.zimandl@gmail.com>
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

package debug

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"fnreg/framenet"
	"fnreg/jobs"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errScanFailed = errors.New("frame scan failed on request")

// CorpusProvider gives access to loaded corpora by dataset ID
type CorpusProvider interface {
	Corpus(datasetID string) (*framenet.Corpus, bool)
}

// Actions contains HTTP actions for testing the job runner
type Actions struct {
	corpora       CorpusProvider
	finishSignals map[string]chan<- bool
	mu            sync.Mutex
	jobActions    *jobs.Actions
}

// CreateScanJob enqueues a job which scans frames of a dataset
// and then waits for an explicit finish signal (see FinishScanJob).
// With `error=1`, the job finishes with an error.
func (a *Actions) CreateScanJob(ctx *gin.Context) {
	datasetID := ctx.Param("datasetId")
	corp, ok := a.corpora.Corpus(datasetID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("dataset %s not found", datasetID), http.StatusNotFound)
		return
	}
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("failed to create scan job"), http.StatusInternalServerError)
		return
	}
	jobInfo := FrameScanJobInfo{
		ID:        jobID.String(),
		Type:      jobs.JobTypeFrameScan,
		DatasetID: datasetID,
		Start:     jobs.CurrentDatetime(),
		Update:    jobs.CurrentDatetime(),
	}
	failWithError := ctx.Query("error") == "1"
	finishSignal := make(chan bool)
	fn := jobs.QueuedFunc(func(jctx context.Context, upds chan<- jobs.GeneralJobInfo) {
		defer close(upds)
		result, err := ScanFrames(jctx, corp)
		if err != nil {
			upds <- jobInfo.WithError(err)
			return
		}
		select {
		case <-finishSignal:
		case <-jctx.Done():
			upds <- jobInfo.WithError(jctx.Err())
			return
		}
		if failWithError {
			upds <- jobInfo.WithError(errScanFailed)
			return
		}
		ans := jobInfo
		ans.Result = &result
		upds <- ans.AsFinished()
	})
	a.mu.Lock()
	a.finishSignals[jobInfo.ID] = finishSignal
	a.mu.Unlock()
	a.jobActions.EnqueueJob(&fn, jobInfo)
	uniresp.WriteJSONResponse(ctx.Writer, jobInfo.FullInfo())
}

func (a *Actions) FinishScanJob(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	a.mu.Lock()
	finish, ok := a.finishSignals[jobID]
	delete(a.finishSignals, jobID)
	a.mu.Unlock()
	if !ok {
		uniresp.WriteJSONErrorResponse(ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	// the job may not run yet so the signal must not block
	close(finish)
	if storedJob, ok := a.jobActions.GetJob(jobID); ok {
		// the stored value is typically not the final one yet
		// as it is updated in a different goroutine
		uniresp.WriteJSONResponse(ctx.Writer, storedJob.FullInfo())

	} else {
		uniresp.WriteJSONErrorResponse(ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
	}
}

// NewActions is the default factory
func NewActions(corpora CorpusProvider, jobActions *jobs.Actions) *Actions {
	return &Actions{
		corpora:       corpora,
		finishSignals: make(map[string]chan<- bool),
		jobActions:    jobActions,
	}
}
