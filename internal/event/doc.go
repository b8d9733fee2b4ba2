// Package event defines the values published by the engine driver and the
// listener registry that delivers them.
//
// Five event families exist: lines received on stdout, lines received on
// stderr, commands written to stdin, the prepare handshake outcome, and the
// final aborted notification. Listeners are invoked synchronously on the
// goroutine that produced the event; a panicking listener is recovered and
// logged so it cannot take down a worker.
package event
