// Package responder answers chat queries from a loaded question/answer
// table, falling back to a small built-in table and then to a fixed reply.
package responder
