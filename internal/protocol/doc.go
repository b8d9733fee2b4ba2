// Package protocol implements the small part of the engine's text protocol
// the driver interprets itself.
//
// It builds the outbound command vocabulary, recognizes the prepare
// handshake response on stdout, and classifies stderr lines into abort
// decisions. Every other line is forwarded verbatim to listeners for
// domain-specific interpretation.
package protocol
