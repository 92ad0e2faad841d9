// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP calls to the user, word and quiz
// services; every error leaving a handler goes through HandleAPIError so
// clients only see safe messages.
package api
