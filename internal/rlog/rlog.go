// Package rlog is the module's structured-logging facade. It does not wrap
// luxfi/log's API, just names the logger Action's constructor expects so
// call sites read "rlog.Logger" instead of the bare import. Action holds
// the logger but writes no log lines, and the sub-machines take none.
package rlog

import (
	"fmt"

	"github.com/luxfi/log"
)

// Logger is the geth-style structured logger the rest of the module
// accepts: With/Info/Debug/Warn/Error taking a message plus variadic
// key-value pairs.
type Logger = log.Logger

// NoOp returns a logger that discards everything, used by default in tests
// and scenario scripts that don't care about log output.
func NoOp() Logger { return log.NewNoOpLogger() }

// WithComponent tags every subsequent log line from l with a "component"
// field, e.g. the name of a sub-machine ("resource_proof", "mergesplit").
func WithComponent(l Logger, name string) Logger {
	return l.New("component", name)
}

// WithNode tags every subsequent log line with the owning node's name.
func WithNode(l Logger, name fmt.Stringer) Logger {
	return l.New("node", name.String())
}
