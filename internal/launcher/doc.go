// Package launcher resolves engine executables and prepares the command
// used to start them.
//
// Resolution turns a caller-supplied path into an absolute path to an
// existing executable file. The engine is started in its own directory so
// that it finds data files shipped next to the binary.
package launcher
