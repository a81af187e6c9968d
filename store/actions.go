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

package store

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fnreg/db/mysql"
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

type ImportArgs struct {
	DatasetID string `json:"datasetId"`
	DBName    string `json:"dbName"`
	AfterJob  string `json:"afterJob,omitempty"`
}

// RunImport imports a corpus using a dedicated, import-tuned
// database connection.
func RunImport(ctx context.Context, conf mysql.Conf, datasetID string, corp *framenet.Corpus) (ImportResult, error) {
	db, err := mysql.OpenImportTunedDB(conf)
	if err != nil {
		return ImportResult{}, err
	}
	defer db.Close()
	return ImportCorpus(ctx, db.DB(), datasetID, corp)
}

type Actions struct {
	dbConf     *mysql.Conf
	db         *mysql.Adapter
	corpora    CorpusProvider
	jobActions *jobs.Actions
}

func (a *Actions) dbAvailable(ctx *gin.Context) bool {
	if a.db == nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("database not configured"), http.StatusServiceUnavailable)
		return false
	}
	return true
}

// Import starts an asynchronous import of a dataset into the database.
// With the `after` URL argument, the import waits for the specified job.
func (a *Actions) Import(ctx *gin.Context) {
	if !a.dbAvailable(ctx) {
		return
	}
	datasetID := ctx.Param("datasetId")
	corp, ok := a.corpora.Corpus(datasetID)
	if !ok {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("dataset %s not found", datasetID), http.StatusNotFound)
		return
	}
	if err := ValidateDatasetID(datasetID); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	jobID, err := uuid.NewUUID()
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	jobInfo := ImportJobInfo{
		ID:        jobID.String(),
		Type:      jobs.JobTypeDBImport,
		DatasetID: datasetID,
		Start:     jobs.CurrentDatetime(),
		Update:    jobs.CurrentDatetime(),
		Args: ImportArgs{
			DatasetID: datasetID,
			DBName:    a.dbConf.Name,
			AfterJob:  ctx.Query("after"),
		},
	}
	dbConf := *a.dbConf
	fn := jobs.QueuedFunc(func(jctx context.Context, updateJobChan chan<- jobs.GeneralJobInfo) {
		defer close(updateJobChan)
		result, err := RunImport(jctx, dbConf, datasetID, corp)
		if err != nil {
			updateJobChan <- jobInfo.WithError(err)
			return
		}
		ans := jobInfo
		ans.Result = &result
		updateJobChan <- ans.AsFinished()
	})
	if jobInfo.Args.AfterJob != "" {
		if err := a.jobActions.EnqueueJobAfter(&fn, jobInfo, jobInfo.Args.AfterJob); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, jobs.ErrJobNotFound) {
				status = http.StatusNotFound
			}
			uniresp.RespondWithErrorJSON(ctx, err, status)
			return
		}

	} else {
		a.jobActions.EnqueueJob(&fn, jobInfo)
	}
	uniresp.WriteJSONResponse(ctx.Writer, jobInfo.FullInfo())
}

// SearchLU searches lexical units stored in the database
func (a *Actions) SearchLU(ctx *gin.Context) {
	if !a.dbAvailable(ctx) {
		return
	}
	ans, err := SearchLU(
		ctx,
		a.db.DB(),
		ctx.Param("datasetId"),
		ctx.Param("lemma"),
		strings.ToUpper(ctx.Query("pos")),
	)
	if errors.Is(err, ErrInvalidDatasetID) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return

	} else if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// NewActions creates store actions. In case dbConf is nil,
// all the actions respond with 503.
func NewActions(dbConf *mysql.Conf, db *mysql.Adapter, corpora CorpusProvider, jobActions *jobs.Actions) *Actions {
	return &Actions{
		dbConf:     dbConf,
		db:         db,
		corpora:    corpora,
		jobActions: jobActions,
	}
}
