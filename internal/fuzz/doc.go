// Package fuzztests holds Go fuzz harnesses for the analysis pipeline
// (source -> lexer -> parser -> passes). They guard against panics, hangs
// and unstable output on arbitrary editor input.
//
// Run with, for example:
//
//	go test ./internal/fuzz -fuzz FuzzAnalyze -fuzztime 30s
package fuzztests
