/*
Package api holds the request/response contract shared by the dashboard's
HTTP handlers.

Every handler follows the same shape: validate the request, call exactly one
gateway operation, classify the outcome with Classify, and produce a response.
The subpackages implement the handlers:

1. dashboardhandler - record listing page, add record, delete record
2. secretshandler - secrets listing page, secret tag detail
3. healthhandler - startup, liveness and readiness probes

# Outcome Classification

	Outcome        Pages                           JSON endpoints
	ok             200, page with data             200
	validation     -                               400 {error, details}
	not_found      -                               404 {error}
	unavailable    200, empty page with notice     500 {error, details}
	unauthorized   200, empty page with notice     500 {error, details}
	error          500, error page                 500 {error, details}

Pages never show stack traces. JSON bodies carry the upstream message in the
details field for operators.
*/
package api
