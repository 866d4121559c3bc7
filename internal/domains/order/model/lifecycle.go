package model

import "bistro/shared/failure"

// Pay checks the active -> paid transition.
func Pay(status string) error {
	switch status {
	case StatusActive:
		return nil
	case StatusClosed:
		return failure.InvalidState("order is closed")
	default:
		return failure.InvalidState("order is already paid")
	}
}

// Close checks the transition to closed. An unpaid order closes only with explicit confirmation.
func Close(status string, confirm bool) error {
	switch status {
	case StatusPaid:
		return nil
	case StatusActive:
		if !confirm {
			return failure.BadRequestFromString("order is not paid; closing it requires confirmation")
		}

		return nil
	default:
		return failure.InvalidState("order is already closed")
	}
}

// Extend checks that more items may be added.
func Extend(status string) error {
	if status != StatusActive {
		return failure.InvalidState("only active orders can be extended")
	}

	return nil
}
