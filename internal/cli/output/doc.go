// Package output renders everything sharepay-cli shows on the terminal.
//
// Formatters print API results as a table, JSON or YAML. The rest of the
// package stands in for the pieces of a web page the client would
// otherwise have: Navigator for page changes, Banner for alert boxes,
// ShowLoading for busy buttons and Confirm for confirmation dialogs.
// FormatCurrency and FormatDate render amounts and dates the way the
// SharePay web pages do (zh-TW conventions).
package output
