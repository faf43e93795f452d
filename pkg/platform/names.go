// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"
)

// runtime.GOOS values with per-platform directory conventions.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ErrReservedName is the sentinel wrapped by ReservedNameError.
var ErrReservedName = errors.New("reserved file name")

// reservedDeviceNames are the DOS device names, upper case. COM and LPT are
// reserved for the digits 1 to 9 only.
var reservedDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ReservedNameError reports a name that cannot be used as a file or directory
// name on Windows.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("%q is a reserved file name on Windows", e.Name)
}

func (e *ReservedNameError) Unwrap() error { return ErrReservedName }

// IsWindowsReservedName reports whether name, ignoring case and anything
// after the first dot, is a DOS device name.
func IsWindowsReservedName(name string) bool {
	base, _, _ := strings.Cut(name, ".")
	_, ok := reservedDeviceNames[strings.ToUpper(base)]
	return ok
}

// CheckPortableName returns a *ReservedNameError when name could not be
// unpacked into a directory of the same name on every platform.
func CheckPortableName(name string) error {
	if IsWindowsReservedName(name) {
		return &ReservedNameError{Name: name}
	}
	return nil
}

// ReservedNames returns the reserved device names in upper case.
func ReservedNames() []string {
	names := make([]string, 0, len(reservedDeviceNames))
	for name := range reservedDeviceNames {
		names = append(names, name)
	}
	return names
}
