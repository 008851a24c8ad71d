package storebark

import "errors"

var (
	// ErrNotifierRequired is returned when a pipeline is built without a notifier
	ErrNotifierRequired = errors.New("notifier is required")
)
