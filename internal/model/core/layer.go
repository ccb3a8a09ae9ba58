package core

// LayerID identifies one of the 13 ENC display categories exposed by
// the chart tile provider. The numbering is a wire contract with the
// provider and must not be reordered.
type LayerID int

const (
	LayerChartFramework LayerID = iota
	LayerNaturalFeatures
	LayerManMadeFeatures
	LayerDepthsCurrents
	LayerSeabedObstructions
	LayerTrafficRoutes
	LayerSpecialAreas
	LayerAidsToNavigation
	LayerServices
	LayerDataQuality
	LayerLowAccuracy
	LayerAdditionalInfo

	// LayerShallowWaterPattern also carries the overscale warning;
	// the provider serves both as display category 12.
	LayerShallowWaterPattern
)

// MinLayerID and MaxLayerID bound the valid layer domain.
const (
	MinLayerID LayerID = LayerChartFramework
	MaxLayerID LayerID = LayerShallowWaterPattern
)

// LayerCount is the total number of selectable categories.
const LayerCount = int(MaxLayerID) + 1

var layerNames = map[LayerID]string{
	LayerChartFramework:      "Chart Framework",
	LayerNaturalFeatures:     "Natural Features",
	LayerManMadeFeatures:     "Man-made Features",
	LayerDepthsCurrents:      "Depths and Currents",
	LayerSeabedObstructions:  "Seabed and Obstructions",
	LayerTrafficRoutes:       "Traffic Routes",
	LayerSpecialAreas:        "Special Areas",
	LayerAidsToNavigation:    "Aids to Navigation",
	LayerServices:            "Services",
	LayerDataQuality:         "Data Quality",
	LayerLowAccuracy:         "Low Accuracy Data",
	LayerAdditionalInfo:      "Additional Information",
	LayerShallowWaterPattern: "Shallow Water Pattern / Overscale Warning",
}

// Name returns the display name for the layer, or "Unknown" for IDs
// outside the catalog.
func (id LayerID) Name() string {
	if name, ok := layerNames[id]; ok {
		return name
	}
	return "Unknown"
}

// InDomain reports whether the ID is a valid catalog member.
func (id LayerID) InDomain() bool {
	return id >= MinLayerID && id <= MaxLayerID
}
