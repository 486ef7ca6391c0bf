// Package metric keeps Prometheus metrics for one sharepay-cli process.
//
// Metrics live on a private registry rather than the global one, so
// tests and the REPL each see only their own counts. `system metrics`
// prints the registry in the text exposition format.
package metric
