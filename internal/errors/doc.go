// Package errors defines error types for the engine driver.
//
// This package provides structured error types that describe the different
// failure scenarios when launching and driving an engine process. All error
// types support error unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors
