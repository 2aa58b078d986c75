package enum

// ItemType classifies a quotation line item
type ItemType string

const (
	ItemTypeHardware ItemType = "hardware"
	ItemTypeSoftware ItemType = "software"
	ItemTypeLabor    ItemType = "labor"
)

// IsValid reports whether the item type is one of the known types
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeHardware, ItemTypeSoftware, ItemTypeLabor:
		return true
	}
	return false
}

// LaborSubtype classifies labor items. Only meaningful when the item type is
// labor; items without a subtype are aggregated as engineering.
type LaborSubtype string

const (
	LaborSubtypeEngineering   LaborSubtype = "engineering"
	LaborSubtypeCommissioning LaborSubtype = "commissioning"
	LaborSubtypeInstallation  LaborSubtype = "installation"
)

// IsValid reports whether the labor subtype is one of the known subtypes
func (s LaborSubtype) IsValid() bool {
	switch s {
	case LaborSubtypeEngineering, LaborSubtypeCommissioning, LaborSubtypeInstallation:
		return true
	}
	return false
}
