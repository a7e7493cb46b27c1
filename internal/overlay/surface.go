package overlay

import "github.com/jengzang/fleetmap-backend-go/internal/models"

// Surface is a map view that layers can be bound to
type Surface interface {
	ID() string
	// SetLayers replaces every bound layer with ls
	SetLayers(ls models.LayerSet) error
	// ClearLayers removes every bound layer
	ClearLayers() error
}
