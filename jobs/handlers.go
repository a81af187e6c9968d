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
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

func respondJobError(ctx *gin.Context, err error) {
	if errors.Is(err, ErrJobNotFound) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
}

// JobList lists all the jobs. With `unfinishedOnly=1`,
// only queued and running jobs are listed.
func (a *Actions) JobList(ctx *gin.Context) {
	unfinishedOnly := ctx.Request.URL.Query().Get("unfinishedOnly") == "1"
	uniresp.WriteJSONResponse(ctx.Writer, a.ListJobs(unfinishedOnly))
}

func (a *Actions) JobInfo(ctx *gin.Context) {
	job, ok := a.GetJob(ctx.Param("jobId"))
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job %s not found", ctx.Param("jobId")), http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())
}

func (a *Actions) Delete(ctx *gin.Context) {
	job, err := a.CancelJob(ctx.Param("jobId"))
	if err != nil {
		respondJobError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())
}

func (a *Actions) ClearIfFinished(ctx *gin.Context) {
	job, removed, err := a.ClearJobIfFinished(ctx.Param("jobId"))
	if err != nil {
		respondJobError(ctx, err)
		return
	}
	uniresp.WriteJSONResponse(
		ctx.Writer,
		struct {
			Removed bool `json:"removed"`
			JobInfo any  `json:"jobInfo"`
		}{
			Removed: removed,
			JobInfo: job.FullInfo(),
		},
	)
}

func (a *Actions) Utilization(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, a.GetUtilization())
}
