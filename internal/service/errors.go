package service

import "errors"

var (
	// ErrTerminalWorkOrder rejects scans against a completed or cancelled
	// work order before any event is appended.
	ErrTerminalWorkOrder = errors.New("work order is in a terminal status")

	// ErrInvalidTransition rejects an explicit-direction scan that does not
	// match the serial's current state: OUT with no open session, or IN
	// while one is already open.
	ErrInvalidTransition = errors.New("scan does not match the serial's session state")

	// ErrConflict is surfaced after a toggle exhausts its retries against
	// concurrent writers on the same serial.
	ErrConflict = errors.New("concurrent toggle conflict")

	// ErrOpenPauseExists rejects declaring a pause while one is ongoing.
	ErrOpenPauseExists = errors.New("an open pause window already exists")

	// ErrNoOpenPause rejects resuming a work order that is not paused.
	ErrNoOpenPause = errors.New("no open pause window")
)
