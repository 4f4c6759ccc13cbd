package app

import "errors"

// ErrQuit is returned from Run when the user requests a normal exit.
// Callers should treat it as success.
var ErrQuit = errors.New("quit requested")
