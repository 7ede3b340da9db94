//go:build tools

package tools

// Pins the mock generator so `go run github.com/vektra/mockery/v2` always
// uses the version the checked-in mocks were generated with.
import (
	_ "github.com/vektra/mockery/v2"
)
