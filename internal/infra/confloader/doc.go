// Package confloader loads layered configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables, SHAREPAY_ prefixed
//  3. The YAML configuration file
//  4. Defaults (WithDefaults)
//
// Environment names are upper-cased keys with dots replaced by
// underscores: SHAREPAY_CREDENTIALS_REDIS_ADDR sets
// credentials.redis.addr. Keys registered with WithKeys resolve exactly,
// so SHAREPAY_RATE_LIMIT maps to rate_limit rather than rate.limit.
//
// Watcher reports edits to a single file and tolerates editors that
// replace the file by rename.
package confloader
