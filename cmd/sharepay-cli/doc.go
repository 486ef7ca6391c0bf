// Command sharepay-cli is a terminal client for the SharePay trip
// bill-splitting service.
//
// Usage:
//
//	sharepay-cli login -u amy
//	sharepay-cli dashboard
//	sharepay-cli trip create --name Tokyo --currency JPY
//	sharepay-cli payment add --amount 1200 --description dinner --split 1 --split 2 3
//	sharepay-cli trip settlement 3
//	sharepay-cli -o json request GET /api/dashboard
//	sharepay-cli shell
//
// Expired access tokens are refreshed transparently; when the session
// cannot be renewed the stored tokens are removed and the command asks
// you to log in again.
package main
