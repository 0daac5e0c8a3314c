package analysis

import "errors"

// ErrNotConfigured indicates no backend client could be initialized,
// typically a missing API key or an unsupported backend name.
var ErrNotConfigured = errors.New("analysis backend not configured")
