// Package config loads runtime configuration for the gophsocial CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file and the process environment, GOPHSOCIAL_* variables.
//     The file is given with -e/-env, otherwise ./.env is read if present.
//     Real environment variables win over the file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   local database path
//	-b string   token store backend: sqlite, bolt or memory
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080/v1",
//	  "db_path": "social.db",
//	  "token_backend": "sqlite",
//	  "page_size": 12,
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "log_file": "gophsocial.log"
//	}
package config
