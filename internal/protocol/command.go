package protocol

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/engine-driver-go/internal/event"
)

// QuitText is the command that asks the engine to exit.
const QuitText = "quit"

// NewCommand trims text and assigns it a unique ID.
// It returns false when nothing but whitespace remains.
func NewCommand(text string) (event.Command, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return event.Command{}, false
	}

	return event.Command{ID: ulid.Make().String(), Text: trimmed}, true
}

func mustCommand(format string, args ...any) event.Command {
	cmd, _ := NewCommand(fmt.Sprintf(format, args...))

	return cmd
}

// Quit builds the shutdown command.
func Quit() event.Command {
	return mustCommand(QuitText)
}

// Prepare builds the handshake request "mnjprepare <depth> <seed>".
func Prepare(depth int, seed int64) event.Command {
	return mustCommand("%s %d %d", HandshakeName, depth, seed)
}

// ThreadCount builds "tlp num <n>".
func ThreadCount(n int) event.Command {
	return mustCommand("tlp num %d", n)
}

// HashSize builds "hash <n>".
func HashSize(n int) event.Command {
	return mustCommand("hash %d", n)
}

// DfpnClient builds "dfpn_client <address> <port>", linking the engine to
// an auxiliary solver server.
func DfpnClient(address string, port int) event.Command {
	return mustCommand("dfpn_client %s %d", address, port)
}

// Mnj builds "mnj <address> <port> <name> <threads> <depth> <0|1>".
func Mnj(address string, port int, name string, threads, depth int, sendPV bool) event.Command {
	pv := 0
	if sendPV {
		pv = 1
	}

	return mustCommand("mnj %s %d %s %d %d %d", address, port, name, threads, depth, pv)
}

// DfpnConnect builds "dfpn connect <address> <port> <name>".
func DfpnConnect(address string, port int, name string) event.Command {
	return mustCommand("dfpn connect %s %d %s", address, port, name)
}
