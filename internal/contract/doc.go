// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package contract provides validation constants and utilities for the
// typenames CLI.
//
// # Configuration Limits
//
// ValidateConfig checks scan settings before a scan starts:
//
//	if res := contract.ValidateConfig(cfg); !res.OK {
//	    log.Printf("invalid config: %s", res.Message)
//	}
//
// The per-file size limit can be adjusted with the
// TYPENAMES_MAX_FILE_SIZE_BYTES environment variable, which takes
// precedence over the configuration file:
//
//	export TYPENAMES_MAX_FILE_SIZE_BYTES=4194304  # 4 MiB
//
// Zero disables the limit. Invalid values are ignored.
//
// # Symbols
//
// ParseSymbol validates the symbol argument of the inspect command and
// splits it into class, member and parameter.
package contract
