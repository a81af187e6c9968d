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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fnreg/general"
	"fnreg/terminology"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func main() {
	versionInfo := general.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
	progName := filepath.Base(os.Args[0])

	toolInputCmd := flag.NewFlagSet("toolinput", flag.ExitOnError)
	var toolInputOpts toolInputArgs
	toolInputOpts.register(toolInputCmd)
	toolInputCmd.StringVar(&toolInputOpts.outputDir, "out", "", "output directory (will be recreated)")
	toolInputCmd.StringVar(&toolInputOpts.readmePath, "readme", "", "README file copied to the output directory")
	toolInputCmd.StringVar(&toolInputOpts.eventTypesPath, "event-types", "", "event type definitions (JSON)")
	toolInputCmd.BoolVar(&toolInputOpts.posInLU, "pos-in-lu", false, "keep part of speech in LU keys")
	toolInputCmd.StringVar(&toolInputOpts.posMapping, "pos-mapping", "", "POS mapping, e.g. V:VERB,N:NOUN")
	toolInputCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s toolinput [options]\n\n", progName)
		toolInputCmd.PrintDefaults()
	}

	tablesCmd := flag.NewFlagSet("tables", flag.ExitOnError)
	var tablesOpts tablesArgs
	tablesOpts.register(tablesCmd)
	tablesCmd.StringVar(&tablesOpts.format, "format", "tsv", "output format (csv, tsv, json)")
	tablesCmd.StringVar(&tablesOpts.outputPath, "out", "", "output file (stdout by default)")
	tablesCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s tables [options] [table ID]\n\n", progName)
		fmt.Fprintf(os.Stderr, "Available tables: %s, %s, %s, %s, %s, %s, %s, %s\n\n",
			"frameLUs", "luFrames", "frameFETypes", "feFrames", "feCoreness",
			"luFreqClasses", "posGF", "posPT")
		tablesCmd.PrintDefaults()
	}

	successorsCmd := flag.NewFlagSet("successors", flag.ExitOnError)
	var successorsOpts successorsArgs
	successorsOpts.register(successorsCmd)
	successorsCmd.StringVar(&successorsOpts.relations, "relations", "", "comma separated relation types (all by default)")
	successorsCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s successors [options] [frame name]\n\n", progName)
		successorsCmd.PrintDefaults()
	}

	feGraphCmd := flag.NewFlagSet("fegraph", flag.ExitOnError)
	var feGraphOpts feGraphArgs
	feGraphOpts.register(feGraphCmd)
	feGraphCmd.StringVar(&feGraphOpts.outputPath, "out", "", "output DOT file (stdout by default)")
	feGraphCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s fegraph [options] [frame name]\n\n", progName)
		feGraphCmd.PrintDefaults()
	}

	searchCmd := flag.NewFlagSet("search", flag.ExitOnError)
	var searchOpts searchArgs
	searchOpts.register(searchCmd)
	searchCmd.IntVar(&searchOpts.limit, "limit", 20, "max. number of hits")
	searchCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s search [options] [query]\n\n", progName)
		searchCmd.PrintDefaults()
	}

	terminologyCmd := flag.NewFlagSet("terminology", flag.ExitOnError)
	var terminologyOpts terminologyArgs
	terminologyCmd.StringVar(&terminologyOpts.rootDir, "root", ".", "directory containing the `terminology` subdirectory")
	terminologyCmd.StringVar(&terminologyOpts.format, "format", "tsv", "output format (csv, tsv, json)")
	terminologyCmd.StringVar(&terminologyOpts.outputPath, "out", "", "output file (stdout by default)")
	terminologyCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s terminology [options] [category]\n\n", progName)
		fmt.Fprintf(os.Stderr, "Available categories: %v\n\n", terminology.AcceptedCategories)
		terminologyCmd.PrintDefaults()
	}

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	var importOpts importArgs
	importOpts.register(importCmd)
	importCmd.BoolVar(&importOpts.dryRun, "dry-run", false, "only check the arguments")
	importCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s import -conf [config.json] -dataset [dataset ID]\n\n", progName)
		importCmd.PrintDefaults()
	}

	versionCmd := flag.NewFlagSet("version", flag.ExitOnError)
	versionCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "\n\t%s version\n", progName)
	}

	generalUsage := func() {
		fmt.Fprintf(os.Stderr, "fnstats - FrameNet statistics and exports\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\t%s toolinput [options]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s tables [options] [table ID]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s successors [options] [frame name]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s fegraph [options] [frame name]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s search [options] [query]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s terminology [options] [category]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s import [options]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s help [command]\n", progName)
		fmt.Fprintf(os.Stderr, "\t%s version\n", progName)
	}

	var action string
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch action {
	case "toolinput":
		toolInputCmd.Parse(os.Args[2:])
		runToolInput(ctx, toolInputOpts)
	case "tables":
		tablesCmd.Parse(os.Args[2:])
		if tablesCmd.NArg() < 1 {
			tablesCmd.Usage()
			os.Exit(1)
		}
		runTables(ctx, tablesOpts, tablesCmd.Arg(0))
	case "successors":
		successorsCmd.Parse(os.Args[2:])
		if successorsCmd.NArg() < 1 {
			successorsCmd.Usage()
			os.Exit(1)
		}
		runSuccessors(ctx, successorsOpts, successorsCmd.Arg(0))
	case "fegraph":
		feGraphCmd.Parse(os.Args[2:])
		if feGraphCmd.NArg() < 1 {
			feGraphCmd.Usage()
			os.Exit(1)
		}
		runFEGraph(ctx, feGraphOpts, feGraphCmd.Arg(0))
	case "search":
		searchCmd.Parse(os.Args[2:])
		if searchCmd.NArg() < 1 {
			searchCmd.Usage()
			os.Exit(1)
		}
		runSearch(ctx, searchOpts, searchCmd.Arg(0))
	case "terminology":
		terminologyCmd.Parse(os.Args[2:])
		category := terminologyCmd.Arg(0)
		if category == "" {
			category = terminology.CategoryFrameRelations
		}
		runTerminology(terminologyOpts, category)
	case "import":
		importCmd.Parse(os.Args[2:])
		runImport(ctx, importOpts)
	case "version":
		fmt.Printf("fnstats %s\n", versionInfo)
	case "help":
		if len(os.Args) > 2 {
			switch os.Args[2] {
			case "toolinput":
				toolInputCmd.Usage()
			case "tables":
				tablesCmd.Usage()
			case "successors":
				successorsCmd.Usage()
			case "fegraph":
				feGraphCmd.Usage()
			case "search":
				searchCmd.Usage()
			case "terminology":
				terminologyCmd.Usage()
			case "import":
				importCmd.Usage()
			case "version":
				versionCmd.Usage()
			default:
				fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[2])
				generalUsage()
			}

		} else {
			generalUsage()
		}
	default:
		generalUsage()
	}
}
