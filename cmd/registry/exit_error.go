// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/cratehub/registry/pkg/types"
)

// ExitError carries the process exit code out of a RunE handler. Execute
// exits with Code; the message is printed unless the command already did.
type ExitError struct {
	Code types.ExitCode
	Err  error

	rendered bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
