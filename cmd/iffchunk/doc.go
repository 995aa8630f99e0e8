// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for iffchunk.
//
// This package implements the Cobra command hierarchy for the iffchunk CLI:
// the root command, chunk identifier validation, file inspection, the
// reserved identifier listing, and configuration management.
package cmd
