package datasource

// Capability is one host extension point the data source fills.
type Capability string

const (
	CapabilityConfig   Capability = "config"
	CapabilityQuery    Capability = "query"
	CapabilityVariable Capability = "variable"
)

var Version = "dev"

// Descriptor is the registration record handed to the host. The HTTP layer
// only mounts routes for the capabilities listed here.
type Descriptor struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	Version      string       `json:"version"`
	Backend      string       `json:"backend"`
	Capabilities []Capability `json:"capabilities"`
}

func NewDescriptor(backend string) Descriptor {
	return Descriptor{
		ID:      "dns-stats-datasource",
		Name:    "DNS Statistics",
		Type:    "datasource",
		Version: Version,
		Backend: backend,
		Capabilities: []Capability{
			CapabilityConfig,
			CapabilityQuery,
			CapabilityVariable,
		},
	}
}

func (d Descriptor) Has(c Capability) bool {
	for _, have := range d.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}
