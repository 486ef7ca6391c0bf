// Package tlsroots builds the TLS client configuration used to reach a
// SharePay server: system roots plus an optional private CA bundle, and
// an optional client certificate for servers behind mutual TLS.
package tlsroots
