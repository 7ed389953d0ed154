// Package models defines the database rows, aggregated read rows and
// request payloads of the Q&A board.
package models
