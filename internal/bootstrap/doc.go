// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package bootstrap handles typenames project configuration.
//
// A project is configured by an optional .typenames.yaml file in the scan
// root. InitConfig writes one with the defaults; LoadConfig merges a file
// over scan.DefaultConfig:
//
//	path, err := bootstrap.InitConfig(".", false, logger)
//
//	cfg, err := bootstrap.LoadConfig("", "src", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := scan.New(cfg, logger).Run(ctx)
//
// # File Format
//
//	exclude:
//	  - .git/**
//	  - vendor/**
//	extensions:
//	  - .php
//	max_file_size_bytes: 1048576
//	workers: 0
//
// A zero workers value uses one worker per CPU.
package bootstrap
