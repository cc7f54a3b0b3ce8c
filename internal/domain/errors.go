package domain

import "errors"

// ErrBrokenLink is returned by a LinkChecker when a URL answers with a client or server error
// after retries.
var ErrBrokenLink = errors.New("broken link")
