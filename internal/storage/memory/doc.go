// Package memory provides an in-process credential backend.
//
// Nothing survives the process. It backs `--ephemeral` runs and the
// tests of every layer above storage.
package memory
