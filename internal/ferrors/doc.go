// Package ferrors provides FAP's domain-specific error types and utilities.
//
// It implements a structured error handling system with error codes,
// wrapping, and context information, following Go 1.13+ error handling
// patterns with errors.Is and errors.As support.
package ferrors
