package driver

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/wagiedev/engine-driver-go/internal/errors"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ServerConfig holds the parameters of Connect.
type ServerConfig struct {
	// Address is the host of the parallel search server.
	Address string
	// Port is the main server port.
	Port int
	// AuxPort is the port of the auxiliary solver link on the same host.
	AuxPort int
	// Name identifies this engine on the server: letters, digits, underscore.
	Name string
	// ThreadCount is the number of search threads.
	ThreadCount int
	// HashSize is the hash command value.
	HashSize int
	// Depth is the search depth contributed to the server.
	Depth int
	// SendPV asks the engine to report principal variations.
	SendPV bool
}

// DfpnConfig holds the parameters of ConnectToDfpn.
type DfpnConfig struct {
	Address     string
	Port        int
	Name        string
	ThreadCount int
	HashSize    int
}

func (c *ServerConfig) validate() error {
	return firstError(
		validateAddress(c.Address),
		validatePort("port", c.Port),
		validatePort("aux port", c.AuxPort),
		validateName(c.Name),
		validatePositive("thread count", c.ThreadCount),
		validatePositive("hash size", c.HashSize),
		validatePositive("depth", c.Depth),
	)
}

func (c *DfpnConfig) validate() error {
	return firstError(
		validateAddress(c.Address),
		validatePort("port", c.Port),
		validateName(c.Name),
		validatePositive("thread count", c.ThreadCount),
		validatePositive("hash size", c.HashSize),
	)
}

func validateAddress(address string) error {
	if address == "" || strings.ContainsFunc(address, unicode.IsSpace) {
		return &errors.InvalidArgumentError{
			Field:  "address",
			Value:  address,
			Reason: "must be non-empty without whitespace",
		}
	}

	return nil
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &errors.InvalidArgumentError{Field: field, Value: port, Reason: "must be within 1-65535"}
	}

	return nil
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return &errors.InvalidArgumentError{
			Field:  "name",
			Value:  name,
			Reason: "must contain only letters, digits, and underscores",
		}
	}

	return nil
}

func validatePositive(field string, v int) error {
	if v <= 0 {
		return &errors.InvalidArgumentError{Field: field, Value: v, Reason: "must be positive"}
	}

	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

