// Package driver implements the engine driver: the lifecycle controller
// that launches an engine process and the three workers that exchange lines
// with it.
//
// After Initialize, a stdout reader, a stderr reader, and a command writer
// run concurrently with the caller. Lifecycle transitions (Initialize,
// Prepare, Connect, ConnectToDfpn, Abort) are serialized by a single mutex;
// status flags are atomics so listeners can read them from any goroutine.
//
// Abort is the only cancellation mechanism. It queues quit, waits a bounded
// time for the engine to exit, kills it otherwise, and closes the pipes so
// that readers blocked in Read return. Workers are joined best-effort: a
// worker stuck inside a listener is abandoned rather than waited for.
package driver
