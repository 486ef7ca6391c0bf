// Package service exposes the SharePay API as typed Go calls.
//
// Each service validates its input the way the web forms do, then sends
// the request through the dispatcher so that expired sessions are
// refreshed or ended in one place:
//
//   - AuthService: register, login, logout, local session status
//   - TripService: dashboard, trips, members, settlement
//   - PaymentService: add, fetch and edit payments
//
// Login, register and logout use the single-attempt path because a 401
// there means wrong credentials, not an expired session.
package service
