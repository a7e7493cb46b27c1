package service

import (
	"errors"

	"github.com/jengzang/fleetmap-backend-go/internal/heatmap"
	"github.com/jengzang/fleetmap-backend-go/internal/intensity"
)

// ErrInvalidInput wraps validation failures of ingested data
var ErrInvalidInput = errors.New("invalid input")

// IsClientError reports whether err was caused by the request rather than
// the server
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, heatmap.ErrUnknownLevel) ||
		errors.Is(err, intensity.ErrUnknownScale)
}
