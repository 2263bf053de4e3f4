// Package config defines configuration for the progressbar CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (PROGRESSBAR_ prefix)
//   - YAML configuration file
//
// Later sources override earlier ones: file, then environment, then flags.
//
// # Example file
//
//	width: 100
//	format: "#percent# [#bar#] #eta#"
//	done_char: "#"
//	cursor_char: ">"
//	remaining_char: "."
//	chunk_size: 8MiB
//	log:
//	  level: debug
//	  format: json
//	retry:
//	  attempts: 3
//	  backoff: 500ms
//	  max_backoff: 10s
package config
