// Copyright 2019 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2019 Institute of the Czech National Corpus,
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

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"fnreg/cnf"
	"fnreg/datasets"
	"fnreg/db/mysql"
	"fnreg/debug"
	"fnreg/general"
	"fnreg/jobs"
	"fnreg/root"
	"fnreg/store"
	"fnreg/terminology"
	"fnreg/toolinput"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func main() {
	version := general.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "FNREG - FrameNet Registry\n\nUsage:\n\t%s [options] start [config.json]\n\t%s [options] version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("fnreg %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return

	} else if action != "start" {
		log.Fatal().Msgf("Unknown action %s", action)
	}
	conf := cnf.LoadConfig(flag.Arg(1))
	logging.SetupLogging(conf.Logging)
	log.Info().Msg("Starting FNREG")
	cnf.ApplyDefaults(conf)
	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := datasets.LoadRegistry(
		ctx,
		conf.Datasets,
		datasets.LoadOptions{
			NLTKDataDir:    conf.NLTKDataDir,
			MaxAnnotPerKey: conf.MaxAnnotPerKey(),
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load datasets")
	}

	var fnDB *mysql.Adapter
	if conf.DB != nil {
		fnDB, err = mysql.OpenDB(*conf.DB)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		log.Info().Msgf("FrameNet SQL database: %s@%s", conf.DB.Name, conf.DB.Host)

	} else {
		log.Warn().Msg("no database configured, SQL import and search disabled")
	}

	if !conf.Logging.Level.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	rootActions := root.Actions{Version: version, Conf: conf, Registry: registry}
	defer rootActions.OnExit()

	jobActions := jobs.NewActions(conf.Jobs, conf.Language, ctx)
	datasetActions := datasets.NewActions(registry)
	exportActions := toolinput.NewActions(conf.Export, registry, jobActions)
	storeActions := store.NewActions(conf.DB, fnDB, registry, jobActions)
	termActions := terminology.NewActions(conf.TerminologyDir)

	engine.GET(
		"/", rootActions.RootAction)

	engine.GET(
		"/datasets", datasetActions.List)
	engine.GET(
		"/datasets/:datasetId/frames", datasetActions.Frames)
	engine.GET(
		"/datasets/:datasetId/frames/:frameName", datasetActions.Frame)
	engine.GET(
		"/datasets/:datasetId/frames/:frameName/successors",
		datasetActions.Successors)
	engine.GET(
		"/datasets/:datasetId/frames/:frameName/feGraph",
		datasetActions.FEGraph)
	engine.GET(
		"/datasets/:datasetId/lus/:lemma", datasetActions.LUs)
	engine.GET(
		"/datasets/:datasetId/tables/:tableId", datasetActions.Table)
	engine.GET(
		"/datasets/:datasetId/relationTypes", datasetActions.RelationTypes)
	engine.GET(
		"/datasets/:datasetId/search", datasetActions.Search)
	engine.POST(
		"/datasets/:datasetId/toolInput", exportActions.Create)
	engine.POST(
		"/datasets/:datasetId/dbImport", storeActions.Import)
	engine.GET(
		"/datasets/:datasetId/dbLus/:lemma", storeActions.SearchLU)

	engine.GET(
		"/terminology/:category", termActions.Definitions)

	engine.GET(
		"/jobs", jobActions.JobList)
	engine.GET(
		"/jobs/utilization", jobActions.Utilization)
	engine.GET(
		"/jobs/:jobId", jobActions.JobInfo)
	engine.DELETE(
		"/jobs/:jobId", jobActions.Delete)
	engine.GET(
		"/jobs/:jobId/clearIfFinished", jobActions.ClearIfFinished)

	if conf.Logging.Level.IsDebugMode() {
		debugActions := debug.NewActions(registry, jobActions)
		engine.POST("/debug/scanJob/:datasetId", debugActions.CreateScanJob)
		engine.POST("/debug/finishJob/:jobId", debugActions.FinishScanJob)
	}

	log.Info().Msgf("starting to listen at %s:%d", conf.ListenAddress, conf.ListenPort)
	srv := &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", conf.ListenAddress, conf.ListenPort),
		WriteTimeout: time.Duration(conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.ServerReadTimeoutSecs) * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Send()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown request received")

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}
