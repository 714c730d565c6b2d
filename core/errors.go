// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds. Match them with errors.Is, a *StageError unwraps to one of these.
var (
	ErrNoDevicesFound         = errors.New("no physical devices found")
	ErrNoSuitableDevice       = errors.New("no suitable physical device")
	ErrNoGraphicsQueueFamily  = errors.New("no graphics capable queue family")
	ErrInstanceCreationFailed = errors.New("instance creation failed")
	ErrDeviceCreationFailed   = errors.New("logical device creation failed")
)

// State errors of a Context.
var (
	ErrNoInstance   = errors.New("no instance")
	ErrInvalidState = errors.New("invalid context state")
	ErrQueueInvalid = errors.New("queue used after its device was destroyed")
)

// Stage names the part of the bootstrap an error comes from.
type Stage string

// Bootstrap stages
const (
	StageInstance    Stage = "instance"
	StageDiscovery   Stage = "device discovery"
	StageSelection   Stage = "device selection"
	StageQueueFamily Stage = "queue-family discovery"
	StageDevice      Stage = "device"
	StageTeardown    Stage = "teardown"
)

// StageError is a failure of one bootstrap stage. Kind is one of the
// Err* kinds above, Code is the API status code when one was reported.
type StageError struct {
	Stage Stage
	Kind  error
	Code  int32
	Cause error
}

func newStageError(stage Stage, kind error, cause error) *StageError {
	e := &StageError{
		Stage: stage,
		Kind:  kind,
		Cause: cause,
	}
	var apiErr *APIError
	if cause != nil && errors.As(cause, &apiErr) {
		e.Code = apiErr.Code
	}
	return e
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	return msg
}

// Unwrap returns the kind, the API cause is kept in Cause.
func (e *StageError) Unwrap() error {
	return e.Kind
}

// Recoverable reports whether the error came from enumeration or
// selection, which the caller may recover from. Creation failures end
// the startup attempt.
func (e *StageError) Recoverable() bool {
	switch e.Kind {
	case ErrNoDevicesFound, ErrNoSuitableDevice, ErrNoGraphicsQueueFamily:
		return true
	}
	return false
}

// StageOf returns the stage of the first StageError in err's chain.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// APIError is a failed call into the graphics API.
type APIError struct {
	Op   string
	Code int32
	Err  error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s: result %d", e.Op, e.Code)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
