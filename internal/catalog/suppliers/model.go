package suppliers

import (
	"strings"

	"github.com/google/uuid"
)

// Supplier is a vendor products are sourced from.
type Supplier struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
}

// RegionUnassigned labels suppliers without a usable address segment.
const RegionUnassigned = "Unassigned"

// Region derives a coarse region from the trailing comma-separated segment of
// the address, the convention the supplier insights view relies on.
func (s Supplier) Region() string {
	if s.Address == nil {
		return RegionUnassigned
	}
	parts := strings.Split(*s.Address, ",")
	region := strings.TrimSpace(parts[len(parts)-1])
	if region == "" {
		return RegionUnassigned
	}
	return region
}
