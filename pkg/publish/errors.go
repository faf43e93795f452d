// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned when a crate name violates the naming policy.
	ErrInvalidName = errors.New("invalid crate name")
	// ErrInvalidKeyword is returned when a keyword violates the naming policy.
	ErrInvalidKeyword = errors.New("invalid keyword")
	// ErrInvalidFeatureName is returned when a feature name violates the naming policy.
	ErrInvalidFeatureName = errors.New("invalid feature name")
	// ErrInvalidSemver is returned when a version string does not parse.
	ErrInvalidSemver = errors.New("invalid semver")
	// ErrInvalidVersionReq is returned when a version requirement does not parse.
	ErrInvalidVersionReq = errors.New("invalid version req")
	// ErrTooManyKeywords is returned when a keyword list exceeds MaxKeywords.
	ErrTooManyKeywords = errors.New("too many keywords")
	// ErrKeywordTooLong is returned when a keyword reaches MaxKeywordLength.
	ErrKeywordTooLong = errors.New("keyword too long")
	// ErrInvalidDependencyKind is returned for an unknown dependency kind.
	ErrInvalidDependencyKind = errors.New("invalid dependency kind")
)

type (
	// InvalidNameError is returned when a crate name fails validation.
	InvalidNameError struct {
		Value string
	}

	// InvalidKeywordError is returned when a keyword fails validation.
	InvalidKeywordError struct {
		Value string
	}

	// InvalidFeatureNameError is returned when a feature name fails validation.
	InvalidFeatureNameError struct {
		Value string
	}

	// InvalidSemverError is returned when a version fails to parse.
	// Cause is the parser's error, if any.
	InvalidSemverError struct {
		Value string
		Cause error
	}

	// InvalidVersionReqError is returned when a version requirement fails to parse.
	InvalidVersionReqError struct {
		Value string
		Cause error
	}

	// TooManyKeywordsError is returned when a keyword list is longer than MaxKeywords.
	TooManyKeywordsError struct {
		Count int
	}

	// KeywordTooLongError is returned when a keyword has MaxKeywordLength
	// characters or more.
	KeywordTooLongError struct {
		Value string
	}

	// InvalidDependencyKindError is returned when a kind is not one of the
	// dependencyKindNames.
	InvalidDependencyKindError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return "invalid crate name specified: " + e.Value
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface.
func (e *InvalidKeywordError) Error() string {
	return "invalid keyword specified: " + e.Value
}

// Unwrap returns ErrInvalidKeyword for errors.Is() compatibility.
func (e *InvalidKeywordError) Unwrap() error { return ErrInvalidKeyword }

// Error implements the error interface.
func (e *InvalidFeatureNameError) Error() string {
	return "invalid feature name specified: " + e.Value
}

// Unwrap returns ErrInvalidFeatureName for errors.Is() compatibility.
func (e *InvalidFeatureNameError) Unwrap() error { return ErrInvalidFeatureName }

// Error implements the error interface.
func (e *InvalidSemverError) Error() string {
	return "invalid semver: " + e.Value
}

// Unwrap returns ErrInvalidSemver and the parser's error.
func (e *InvalidSemverError) Unwrap() []error {
	return causeChain(ErrInvalidSemver, e.Cause)
}

// Error implements the error interface.
func (e *InvalidVersionReqError) Error() string {
	return "invalid version req: " + e.Value
}

// Unwrap returns ErrInvalidVersionReq and the parser's error.
func (e *InvalidVersionReqError) Unwrap() []error {
	return causeChain(ErrInvalidVersionReq, e.Cause)
}

// Error implements the error interface.
func (e *TooManyKeywordsError) Error() string {
	return fmt.Sprintf("a maximum of %d keywords per crate are allowed", MaxKeywords)
}

// Unwrap returns ErrTooManyKeywords for errors.Is() compatibility.
func (e *TooManyKeywordsError) Unwrap() error { return ErrTooManyKeywords }

// Error implements the error interface.
func (e *KeywordTooLongError) Error() string {
	return fmt.Sprintf("keywords must contain less than %d characters", MaxKeywordLength)
}

// Unwrap returns ErrKeywordTooLong for errors.Is() compatibility.
func (e *KeywordTooLongError) Unwrap() error { return ErrKeywordTooLong }

// Error implements the error interface.
func (e *InvalidDependencyKindError) Error() string {
	return fmt.Sprintf("invalid dependency kind `%s`, must be one of %s", e.Value, dependencyKindChoices())
}

// Unwrap returns ErrInvalidDependencyKind for errors.Is() compatibility.
func (e *InvalidDependencyKindError) Unwrap() error { return ErrInvalidDependencyKind }

func causeChain(sentinel, cause error) []error {
	if cause == nil {
		return []error{sentinel}
	}
	return []error{sentinel, cause}
}
