// Package config holds sharepay-cli settings (~/.sharepay/cli.yaml).
//
// Settings are layered by confloader: defaults, the YAML file,
// SHAREPAY_* environment variables, then global flags. Save writes the
// file back with yaml.v3.
package config
