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

package toolinput

import (
	"context"
	"net/http"
	"path/filepath"

	"fnreg/framenet"
	"fnreg/jobs"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorpusProvider gives access to loaded corpora by dataset ID
type CorpusProvider interface {
	Corpus(datasetID string) (*framenet.Corpus, bool)
}

type Actions struct {
	conf       *Conf
	corpora    CorpusProvider
	jobActions *jobs.Actions
}

// ExportArgsFor creates export arguments for a dataset based
// on the configuration. Each dataset has its own output directory.
func (a *Actions) ExportArgsFor(datasetID string) ExportArgs {
	return ExportArgs{
		OutputDir:      filepath.Join(a.conf.OutputDir, datasetID),
		ReadmePath:     a.conf.ReadmePath,
		EventTypesPath: a.conf.EventTypesPath,
		Options: Options{
			POSInLU:    a.conf.POSInLU,
			POSMapping: a.conf.POSMapping,
		},
	}
}

// RunExportJob enqueues a tool input export
func RunExportJob(
	corp *framenet.Corpus,
	datasetID string,
	args ExportArgs,
	jobActions *jobs.Actions,
) (ExportJobInfo, error) {
	jobID, err := uuid.NewUUID()
	if err != nil {
		return ExportJobInfo{}, err
	}
	jobInfo := ExportJobInfo{
		ID:        jobID.String(),
		Type:      jobs.JobTypeToolInputExport,
		DatasetID: datasetID,
		Start:     jobs.CurrentDatetime(),
		Update:    jobs.CurrentDatetime(),
		Args:      args,
	}
	fn := func(ctx context.Context, updateJobChan chan<- jobs.GeneralJobInfo) {
		defer close(updateJobChan)
		result, err := CreateToolInput(ctx, corp, args)
		if err != nil {
			updateJobChan <- jobInfo.WithError(err)
			return
		}
		ans := jobInfo
		ans.Result = &result
		updateJobChan <- ans.AsFinished()
	}
	jobActions.EnqueueJob(&fn, jobInfo)
	return jobInfo, nil
}

// Create starts an asynchronous export of the tool input data.
// The `posInLU` URL argument (0/1) overrides the configured value.
func (a *Actions) Create(ctx *gin.Context) {
	datasetID := ctx.Param("datasetId")
	corp, ok := a.corpora.Corpus(datasetID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("dataset %s not found", datasetID), http.StatusNotFound)
		return
	}
	if prev, ok := a.jobActions.LastUnfinishedJobOfType(datasetID, jobs.JobTypeToolInputExport); ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("the previous export job %s has not finished yet", prev),
			http.StatusConflict,
		)
		return
	}
	args := a.ExportArgsFor(datasetID)
	switch ctx.Query("posInLU") {
	case "1":
		args.Options.POSInLU = true
	case "0":
		args.Options.POSInLU = false
	}
	jobInfo, err := RunExportJob(corp, datasetID, args, a.jobActions)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("failed to start export job: %s", err),
			http.StatusInternalServerError,
		)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, jobInfo.FullInfo())
}

func NewActions(conf *Conf, corpora CorpusProvider, jobActions *jobs.Actions) *Actions {
	return &Actions{
		conf:       conf,
		corpora:    corpora,
		jobActions: jobActions,
	}
}
