// Package domain defines the SharePay client's domain model.
//
// Types here mirror the JSON payloads of the SharePay API (users, trips,
// members, payments, settlements) plus client-side validation and the
// error codes shared by every other package. Nothing in this package
// performs IO.
package domain
