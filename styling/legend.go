package styling

import (
	mgl "github.com/jamesrr39/ownmap-shields/styling/mapboxglstyle"
)

// Network is a route network as named in the map legend
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func Networks() []Network {
	return []Network{
		{ID: "Lutang:N", Name: "Lutang National Roads"},
		{ID: "Lutang:E", Name: "Lutang Expressways"},
		{ID: "Lutang:BB", Name: "Lutang: Bagong Bandila"},
		{ID: "Lutang:WS", Name: "Lutang: West Sundin"},
		{ID: "Lutang:KT", Name: "Lutang: Katumangan"},
		{ID: "Lutang:HU", Name: "Lutang: Huntsman"},
		{ID: "FSA:FS", Name: "FSA Motorways"},
		{ID: "FSA:TM", Name: "FSA: Tempache"},
	}
}

type LiteralValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type LangLiteralValue struct {
	Lang  string `json:"xml:lang"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type LegendBinding struct {
	Network      struct{}         `json:"network"`
	NetworkLabel LangLiteralValue `json:"networkLabel"`
	Value        LiteralValue     `json:"value"`
}

// LegendBindingsDocument is shaped like a Wikidata SPARQL result, which is what legend controls read network names from
type LegendBindingsDocument struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []LegendBinding `json:"bindings"`
	} `json:"results"`
}

func LegendBindings() *LegendBindingsDocument {
	doc := new(LegendBindingsDocument)
	doc.Head.Vars = []string{"value", "network", "networkLabel"}
	doc.Results.Bindings = []LegendBinding{}

	for _, network := range Networks() {
		doc.Results.Bindings = append(doc.Results.Bindings, LegendBinding{
			NetworkLabel: LangLiteralValue{Lang: "en", Type: "literal", Value: network.Name},
			Value:        LiteralValue{Type: "literal", Value: network.ID},
		})
	}

	return doc
}

// LegendEntry describes the features the listed layers draw, when they pass Filter
type LegendEntry struct {
	Description string         `json:"description"`
	Layers      []string       `json:"layers"`
	Filter      mgl.Expression `json:"filter"`
}

func LegendEntries() []LegendEntry {
	fillID := func(r Road) string { return layerID("fill", r) }
	casingID := func(r Road) string { return layerID("casing", r) }

	tollLayers := []string{
		fillID(motorway()),
		casingID(motorway()),
		casingID(trunk()),
		fillID(toll(primary(), "primary")),
		fillID(toll(secondary(), "secondary")),
		fillID(toll(tertiary(), "tertiary")),
		fillID(minorToll()),
	}

	return []LegendEntry{
		{
			Description: "Freeway (controlled access, divided)",
			Layers:      []string{fillID(motorway()), casingID(motorway())},
			Filter:      isNotToll,
		}, {
			Description: "Expressway (limited access, divided)",
			Layers: []string{
				casingID(expressway(primary(), "primary")),
				casingID(expressway(secondary(), "secondary")),
				casingID(expressway(tertiary(), "tertiary")),
			},
			Filter: mgl.All(isExpressway, isNotToll),
		}, {
			Description: "Principal highway",
			Layers:      []string{fillID(trunk()), casingID(trunk())},
			Filter:      isNotToll,
		}, {
			Description: "Major arterial road",
			Layers:      []string{fillID(primary()), casingID(primary())},
			Filter:      classIs("primary"),
		}, {
			Description: "Minor arterial road",
			Layers:      []string{fillID(secondary()), casingID(secondary())},
			Filter:      classIs("secondary"),
		}, {
			Description: "Collector road",
			Layers:      []string{fillID(tertiary()), casingID(tertiary())},
			Filter:      classIs("tertiary"),
		}, {
			Description: "Local road",
			Layers:      []string{fillID(minor()), casingID(minor())},
			Filter:      mgl.Match(getClass, []string{"minor", "service"}, true, false),
		}, {
			Description: "Driveway or parking aisle",
			Layers:      []string{fillID(minor()), casingID(minor())},
			Filter:      mgl.All(classIs("service"), smallServiceSelector(true, false)),
		}, {
			Description: "Toll road",
			Layers:      tollLayers,
			Filter:      isToll,
		}, {
			Description: "Busway",
			Layers:      []string{fillID(busway()), casingID(busway())},
			Filter:      classIs("busway"),
		}, {
			Description: "Unpaved road",
			Layers:      []string{layerID("surface", baseRoad())},
			Filter:      isUnpaved,
		},
	}
}
