// Package options holds checks shared by the functional-option layers of the
// parser, the CLI and the MCP server.
package options

import "github.com/erraggy/oasmodel/oaserrors"

// ValidateSingleInputSource reports a *oaserrors.ConfigError unless exactly
// one of sources is set. noSourceMsg and multiSourceMsg become the error
// message for the zero and the many case.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	set := 0
	for _, ok := range sources {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return &oaserrors.ConfigError{Option: "input", Message: noSourceMsg}
	case set > 1:
		return &oaserrors.ConfigError{Option: "input", Value: set, Message: multiSourceMsg}
	}
	return nil
}
