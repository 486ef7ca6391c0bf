// Package guard keeps signed-out users away from protected pages.
//
// Every CLI command stands for a page of the SharePay web app. Before a
// protected command builds any request, Check looks for a stored access
// token and, if there is none, redirects to the login page instead.
package guard
