// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the task, user and suggestion services to
// the JSON interface the web client uses; field names stay camelCase.
package api
