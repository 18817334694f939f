package akd

import "errors"

var (
	ErrConfiguration = errors.New("configuration error")
	ErrBackend       = errors.New("backend error")
)
