// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/iffchunk/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/iffchunk/config.cue on macOS, %APPDATA%\iffchunk\config.cue
// on Windows), falling back to ./config.cue and then to built-in defaults. Values can be
// overridden with IFFCHUNK_* environment variables (IFFCHUNK_BYTE_ORDER, IFFCHUNK_UI_VERBOSE).
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
