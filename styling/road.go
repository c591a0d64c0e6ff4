package styling

import (
	"strings"

	mgl "github.com/jamesrr39/ownmap-shields/styling/mapboxglstyle"
)

// at this zoom, roads switch from unified to differentiated bridge/tunnel rendering
const minZoomBrunnel = 11

const (
	minZoomAllRoads   = 4
	minZoomPrimary    = 7
	minZoomSecondary  = 9
	minZoomTertiary   = 11
	minZoomMinor      = 12
	minZoomService    = 13
	minZoomSmallRoads = 15
)

// exponent base for inter-zoom interpolation
const roadExp = 1.2

const (
	roadHue     = 216
	tollRoadHue = 216
	buswayHue   = 322
)

const openMapTilesSource = "openmaptiles"

type Brunnel string

const (
	BrunnelSurface Brunnel = "surface"
	BrunnelBridge  Brunnel = "bridge"
	BrunnelTunnel  Brunnel = "tunnel"
)

var (
	getBrunnel    = mgl.Get("brunnel")
	getClass      = mgl.Get("class")
	getExpressway = mgl.GetOrZero("expressway")
	getLayer      = mgl.GetOrZero("layer")
	getRamp       = mgl.GetOrZero("ramp")
	getToll       = mgl.GetOrZero("toll")

	isToll          = mgl.Eq(getToll, 1)
	isNotToll       = mgl.Neq(getToll, 1)
	isLink          = mgl.Eq(getRamp, 1)
	isNotLink       = mgl.Neq(getRamp, 1)
	isExpressway    = mgl.Eq(getExpressway, 1)
	isNotExpressway = mgl.Neq(getExpressway, 1)
	isUnpaved       = mgl.Eq(mgl.Get("surface"), "unpaved")

	smallServiceClasses = []string{"parking_aisle", "driveway"}
	roadClasses         = []interface{}{"motorway", "trunk", "primary", "secondary", "tertiary", "busway", "bus_guideway", "minor", "service", "track"}
)

func classIs(class string) mgl.Expression {
	return mgl.Eq(getClass, class)
}

func tollSelector(ifToll, otherwise interface{}) mgl.Expression {
	return mgl.Match(getToll, 1, ifToll, otherwise)
}

func linkSelector(ifLink, otherwise interface{}) mgl.Expression {
	return mgl.Match(getRamp, 1, ifLink, otherwise)
}

func expresswaySelector(ifExpressway, otherwise interface{}) mgl.Expression {
	return mgl.Match(getExpressway, 1, ifExpressway, otherwise)
}

func smallServiceSelector(ifSmall, otherwise interface{}) mgl.Expression {
	return mgl.Match(mgl.Get("service"), smallServiceClasses, ifSmall, otherwise)
}

func tunnelTransform(tunnelColor, otherwise interface{}) mgl.Expression {
	return mgl.Match(getBrunnel, "tunnel", tunnelColor, otherwise)
}

var tunnelDashArray = mgl.Step(mgl.Zoom(), mgl.Literal(1), minZoomBrunnel, mgl.Literal(0.5, 0.25))

var roadOpacity = mgl.Step(
	mgl.Zoom(),
	0,
	minZoomAllRoads+1,
	linkSelector(0, mgl.Match(getClass, []string{"motorway", "trunk"}, 1, 0)),
	minZoomPrimary,
	mgl.Match(getClass, []string{"motorway", "trunk", "primary"}, 1, 0),
	minZoomSecondary,
	mgl.Match(getClass, []string{"motorway", "trunk", "primary", "secondary"}, 1, 0),
	minZoomTertiary,
	mgl.Match(getClass, []string{"motorway", "trunk", "primary", "secondary", "tertiary", "busway", "bus_guideway"}, 1, 0),
	minZoomMinor,
	mgl.Match(getClass, "service", 0, 1),
	minZoomService,
	mgl.Match(getClass, "service", smallServiceSelector(0, 1), 1),
	minZoomSmallRoads,
	1,
)

var motorwaySortKey = mgl.Sum(getLayer, 0.1, mgl.Product(-0.1, getRamp), mgl.Product(0.2, getToll))

var expresswaySortKey = mgl.Sum(getLayer, 0.1, mgl.Product(-0.1, getRamp), mgl.Product(0.2, getToll), mgl.Product(0.4, getExpressway))

var widthFactor = mgl.Match(
	getClass,
	[]string{"motorway", "trunk"}, linkSelector(0.5, 1),
	"primary", linkSelector(0.45, 0.9),
	"secondary", linkSelector(0.3, expresswaySelector(0.7, 0.6)),
	[]string{"tertiary", "busway", "bus_guideway"}, linkSelector(0.25, 0.5),
	"minor", 0.3,
	[]string{"service", "track"}, smallServiceSelector(0.15, 0.2),
	0.2,
)

var roadFillWidth = mgl.Interpolate(
	roadExp,
	4, mgl.Product(0.5, widthFactor),
	9, widthFactor,
	12, mgl.Product(mgl.Match(getClass, "motorway", 3.2, expresswaySelector(3.5, 4)), widthFactor),
	17, mgl.Product(17, widthFactor),
	20, mgl.Product(68, widthFactor),
	22, mgl.Product(180, widthFactor),
)

var roadCasingWidth = mgl.Interpolate(
	roadExp,
	4, mgl.Product(mgl.Match(getClass, "motorway", 1.5, 0.5), widthFactor),
	9, mgl.Product(mgl.Match(getClass, "motorway", 3, expresswaySelector(3, 1.2)), widthFactor),
	12, mgl.Product(mgl.Match(getClass, "motorway", 7, expresswaySelector(7, 5)), widthFactor),
	17, mgl.Product(20, widthFactor),
	20, mgl.Product(80, widthFactor),
	22, mgl.Product(200, widthFactor),
)

func roadCasingColorTunnel(otherwise interface{}) mgl.Expression {
	return tunnelTransform(
		mgl.Match(
			getClass,
			[]string{"motorway", "trunk"},
			tollSelector(
				expresswaySelector(mgl.HSL(tollRoadHue, 41, 85), mgl.HSL(tollRoadHue, 41, 80)),
				mgl.HSL(roadHue, 41, 80),
			),
			[]string{"primary", "secondary", "tertiary", "busway", "bus_guideway"},
			mgl.HSL(0, 0, 80),
			mgl.HSL(0, 0, 90),
		),
		otherwise,
	)
}

func roadCasingColorTrunkExpressway(otherwise interface{}) mgl.Expression {
	return mgl.Match(
		getClass,
		"trunk",
		tollSelector(mgl.HSL(tollRoadHue, 25, 50), mgl.HSL(roadHue, 33, 57)),
		otherwise,
	)
}

var defaultCasingColor = mgl.Step(
	mgl.Zoom(),
	roadCasingColorTunnel(roadCasingColorTrunkExpressway(mgl.HSL(roadHue, 0, 90))),
	15,
	roadCasingColorTunnel(roadCasingColorTrunkExpressway(mgl.HSL(roadHue, 32, 62))),
)

var highwayFillColor = tunnelTransform(
	mgl.Match(
		getClass,
		"motorway", tollSelector(mgl.HSL(tollRoadHue, 71, 90), mgl.HSL(roadHue, 71, 90)),
		"trunk", tollSelector(mgl.HSL(tollRoadHue, 77, 90), mgl.HSL(roadHue, 77, 90)),
		[]string{"busway", "bus_guideway"}, mgl.HSL(buswayHue, 25, 93),
		tollSelector(mgl.HSL(tollRoadHue, 100, 95), mgl.HSL(roadHue, 0, 95)),
	),
	mgl.Match(
		getClass,
		"trunk",
		expresswaySelector(
			tollSelector(mgl.HSL(tollRoadHue, 45, 69), mgl.HSL(roadHue, 30, 69)),
			tollSelector(mgl.HSL(tollRoadHue, 23, 69), mgl.HSL(roadHue, 23, 69)),
		),
		tollSelector(mgl.HSL(tollRoadHue, 23, 69), mgl.HSL(roadHue, 23, 69)),
	),
)

var roadSurfaceColor = mgl.Match(
	getClass,
	"motorway", tollSelector(mgl.HSL(tollRoadHue, 50, 70), mgl.HSL(roadHue, 50, 70)),
	"trunk", tollSelector(mgl.HSL(tollRoadHue, 95, 80), mgl.HSL(roadHue, 95, 80)),
	tollSelector(mgl.HSL(tollRoadHue, 100, 40), mgl.HSL(roadHue, 0, 80)),
)

// transitionZoom of 0 means no transition stop
func roadFillColor(hue, minZoom, transitionZoom float64) mgl.Expression {
	stops := []interface{}{minZoom, mgl.HSL(hue, 23, 75)}
	if transitionZoom != 0 {
		stops = append(stops, transitionZoom, mgl.HSL(hue, 23, 75))
	}
	stops = append(stops, 14.9999, mgl.HSL(hue, 23, 75), 15, mgl.HSL(hue, 22, 80))
	return mgl.Interpolate(roadExp, stops...)
}

func tollRoadFillColor(hue, minZoom, transitionZoom float64) mgl.Expression {
	stops := []interface{}{minZoom, mgl.HSL(hue, 100, 75)}
	if transitionZoom != 0 {
		stops = append(stops, transitionZoom, mgl.HSL(hue, 100, 40))
	}
	stops = append(stops, 14.9999, mgl.HSL(hue, 100, 40), 15, mgl.HSL(hue, 100, 75))
	return mgl.Interpolate(roadExp, stops...)
}

func expresswayCasingColor(minZoom, transitionZoom float64) mgl.Expression {
	return mgl.Interpolate(
		roadExp,
		minZoom, mgl.HSL(0, 0, 75),
		transitionZoom, mgl.HSL(roadHue, 32, 57),
	)
}

// Road is one road category's styling. Categories are built from baseRoad and narrowed down by
// the functions below; each returns a new record and leaves its input alone.
type Road struct {
	// Name is appended to the layer IDs. The unconstrained base road has none.
	Name          string
	Brunnel       Brunnel
	MinZoomFill   float64
	MinZoomCasing float64
	Constraints   mgl.Expression
	FillColor     interface{}
	CasingColor   interface{}
	SortKey       interface{}
}

func baseRoad() Road {
	return Road{
		Brunnel:       BrunnelSurface,
		MinZoomFill:   minZoomAllRoads,
		MinZoomCasing: minZoomAllRoads,
		FillColor:     highwayFillColor,
		CasingColor:   defaultCasingColor,
		SortKey:       expresswaySortKey,
	}
}

func named(r Road, name string, constraints mgl.Expression) Road {
	r.Name = name
	r.Constraints = constraints
	return r
}

func withMinZoom(r Road, minZoom float64) Road {
	r.MinZoomFill = minZoom
	r.MinZoomCasing = minZoom
	return r
}

func bridge(r Road) Road {
	r.Brunnel = BrunnelBridge
	return r
}

func tunnel(r Road) Road {
	r.Brunnel = BrunnelTunnel
	return r
}

func motorway() Road {
	r := named(baseRoad(), "motorway", mgl.All(classIs("motorway"), isNotLink))
	r.SortKey = motorwaySortKey
	r.FillColor = mgl.Interpolate(
		roadExp,
		4, tollSelector(mgl.HSL(tollRoadHue, 47, 65), mgl.HSL(roadHue, 18, 66)),
		6, tollSelector(mgl.HSL(tollRoadHue, 30, 56), mgl.HSL(roadHue, 18, 66)),
		minZoomBrunnel-0.5, tollSelector(mgl.HSL(tollRoadHue, 30, 58), mgl.HSL(roadHue, 30, 68)),
		14, tollSelector(mgl.HSL(tollRoadHue, 30, 55), mgl.HSL(roadHue, 30, 65)),
	)
	r.CasingColor = mgl.Interpolate(
		roadExp,
		4, tollSelector(mgl.HSL(tollRoadHue, 47, 66), mgl.HSL(roadHue, 18, 66)),
		6, tollSelector(mgl.HSL(tollRoadHue, 60, 72), mgl.HSL(roadHue, 18, 66)),
		minZoomBrunnel-0.5, tollSelector(mgl.HSL(tollRoadHue, 54, 63), mgl.HSL(roadHue, 54, 63)),
		14, tollSelector(mgl.HSL(tollRoadHue, 30, 47), mgl.HSL(roadHue, 32, 55)),
	)
	return r
}

func trunk() Road {
	r := named(baseRoad(), "trunk", mgl.All(classIs("trunk"), isNotLink, isNotExpressway))
	r.CasingColor = mgl.Interpolate(
		roadExp,
		5, tollSelector(mgl.HSL(tollRoadHue, 52, 40), mgl.HSL(roadHue, 52, 40)),
		9, tollSelector(mgl.HSL(tollRoadHue, 52, 40), mgl.HSL(roadHue, 52, 40)),
		15, tollSelector(mgl.HSL(tollRoadHue, 32, 60), mgl.HSL(roadHue, 32, 60)),
	)
	return r
}

// arterial is a primary, secondary or tertiary road that is neither a link, an expressway nor tolled
func arterial(class string, minZoom float64) Road {
	r := named(
		withMinZoom(baseRoad(), minZoom),
		class,
		mgl.All(classIs(class), isNotLink, isNotExpressway, isNotToll),
	)
	r.FillColor = roadFillColor(roadHue, minZoom, minZoom+2)
	return r
}

func primary() Road {
	r := arterial("primary", minZoomPrimary)
	r.FillColor = highwayFillColor
	r.CasingColor = mgl.Interpolate(
		roadExp,
		5, mgl.HSL(roadHue, 52, 40),
		9, mgl.HSL(roadHue, 52, 40),
		15, mgl.HSL(roadHue, 32, 62),
	)
	return r
}

func secondary() Road {
	return arterial("secondary", minZoomSecondary)
}

func tertiary() Road {
	return arterial("tertiary", minZoomTertiary)
}

func toll(r Road, class string) Road {
	r = named(r, class+"_toll", mgl.All(classIs(class), isNotLink, isNotExpressway, isToll))
	r.FillColor = tollRoadFillColor(tollRoadHue, r.MinZoomFill, r.MinZoomFill+2)
	return r
}

func expressway(r Road, class string) Road {
	r = named(r, class+"_expressway", mgl.All(classIs(class), isNotLink, isExpressway))
	r.FillColor = highwayFillColor
	r.CasingColor = expresswayCasingColor(r.MinZoomCasing, r.MinZoomCasing+2)
	return r
}

// link narrows a category down to its ramps
func link(r Road, class string) Road {
	return named(r, class+"_link", mgl.All(classIs(class), isLink))
}

// arterialLink is a ramp of an arterial road, where tolled ramps are told apart
func arterialLink(r Road, class string, tolled bool) Road {
	if tolled {
		return named(r, class+"_link_toll", mgl.All(classIs(class), isLink, isToll))
	}
	return named(r, class+"_link", mgl.All(classIs(class), isLink, isNotToll))
}

func busway() Road {
	r := named(tertiary(), "busway", mgl.In(getClass, "busway", "bus_guideway"))
	r.FillColor = mgl.Interpolate(
		roadExp,
		minZoomTertiary, mgl.HSL(buswayHue, 25, 75),
		minZoomTertiary+2, mgl.HSL(buswayHue, 25, 50),
		14.9999, mgl.HSL(buswayHue, 25, 50),
		15, mgl.HSL(buswayHue, 25, 80),
	)
	return r
}

func minor() Road {
	r := named(
		withMinZoom(baseRoad(), minZoomMinor),
		"minor",
		mgl.All(mgl.In(getClass, "minor", "service", "track"), isNotToll),
	)
	r.FillColor = roadFillColor(roadHue, minZoomMinor, 0)
	return r
}

func minorToll() Road {
	r := named(minor(), "minor_toll", mgl.All(mgl.In(getClass, "minor", "service"), isToll))
	r.FillColor = tollRoadFillColor(tollRoadHue, minZoomMinor, 0)
	return r
}

// surfaceRoads are the categories drawn both on the ground and on bridges, lowest first
func surfaceRoads() []Road {
	return []Road{
		minor(),
		minorToll(),
		busway(),
		arterialLink(tertiary(), "tertiary", false),
		arterialLink(toll(tertiary(), "tertiary"), "tertiary", true),
		arterialLink(secondary(), "secondary", false),
		arterialLink(toll(secondary(), "secondary"), "secondary", true),
		arterialLink(primary(), "primary", false),
		arterialLink(toll(primary(), "primary"), "primary", true),
		withMinZoom(link(trunk(), "trunk"), minZoomPrimary),
		withMinZoom(link(motorway(), "motorway"), minZoomPrimary),
		tertiary(),
		toll(tertiary(), "tertiary"),
		expressway(tertiary(), "tertiary"),
		secondary(),
		toll(secondary(), "secondary"),
		expressway(secondary(), "secondary"),
		primary(),
		toll(primary(), "primary"),
		expressway(primary(), "primary"),
		trunk(),
		expressway(trunk(), "trunk"),
		motorway(),
	}
}

// layerID is road_<part>_<brunnel>[_<name>]
func layerID(part string, r Road) string {
	parts := []string{"road", part, string(r.Brunnel)}
	if r.Name != "" {
		parts = append(parts, r.Name)
	}
	return strings.Join(parts, "_")
}

func roadFilter(r Road) mgl.Expression {
	filter := mgl.CombineConstraints(mgl.In(getClass, roadClasses...), r.Constraints)

	var brunnelFilter mgl.Expression
	if r.Brunnel == BrunnelSurface {
		brunnelFilter = mgl.Not(mgl.In(getBrunnel, "bridge", "tunnel"))
	} else {
		brunnelFilter = mgl.Eq(getBrunnel, string(r.Brunnel))
	}

	return mgl.CombineConstraints(filter, brunnelFilter)
}

func baseRoadLayer(part string, r Road, minZoom float64) *mgl.Layer {
	return &mgl.Layer{
		ID:          layerID(part, r),
		Type:        mgl.LayerTypeLine,
		Source:      openMapTilesSource,
		SourceLayer: mgl.SourceLayerTransportation,
		MinZoom:     &minZoom,
		Filter:      roadFilter(r),
	}
}

func FillLayer(r Road) *mgl.Layer {
	layer := baseRoadLayer("fill", r, r.MinZoomFill)
	layer.Layout = &mgl.Layout{
		LineCap:     "round",
		LineJoin:    "round",
		Visibility:  "visible",
		LineSortKey: r.SortKey,
	}
	layer.Paint = &mgl.Paint{
		LineOpacity: roadOpacity,
		LineColor:   r.FillColor,
		LineWidth:   roadFillWidth,
		LineBlur:    0.5,
	}
	return layer
}

func CasingLayer(r Road) *mgl.Layer {
	layer := baseRoadLayer("casing", r, r.MinZoomCasing)

	lineCap, lineJoin := "round", "round"
	if r.Brunnel == BrunnelBridge {
		lineCap, lineJoin = "butt", "bevel"
	}

	layer.Layout = &mgl.Layout{
		LineCap:     lineCap,
		LineJoin:    lineJoin,
		Visibility:  "visible",
		LineSortKey: r.SortKey,
	}
	layer.Paint = &mgl.Paint{
		LineOpacity: roadOpacity,
		LineColor:   r.CasingColor,
		LineWidth:   roadCasingWidth,
	}

	if r.Brunnel == BrunnelTunnel {
		layer.Paint.LineDashArray = tunnelDashArray
	} else {
		layer.Paint.LineBlur = 0.5
	}
	return layer
}

// SurfaceLayer dashes unpaved roads
func SurfaceLayer(r Road) *mgl.Layer {
	layer := baseRoadLayer("surface", r, min(r.MinZoomCasing, r.MinZoomFill))
	layer.Filter = mgl.CombineConstraints(roadFilter(r), isUnpaved)
	layer.Layout = &mgl.Layout{
		LineCap:     "butt",
		LineJoin:    "round",
		Visibility:  "visible",
		LineSortKey: r.SortKey,
	}
	layer.Paint = &mgl.Paint{
		LineOpacity:   roadOpacity,
		LineDashArray: []float64{4, 4},
		LineColor:     roadSurfaceColor,
		LineWidth:     roadFillWidth,
		LineBlur:      0.5,
	}
	return layer
}

// RoadLayers is every road layer, bottom to top: tunnels, then roads on the ground, then bridges.
// Within each, casings go under fills.
func RoadLayers() []*mgl.Layer {
	var layers []*mgl.Layer

	tunnelRoad := tunnel(baseRoad())
	layers = append(layers, CasingLayer(tunnelRoad), FillLayer(tunnelRoad))

	roads := surfaceRoads()
	layers = append(layers, roadLayerGroup(roads)...)
	layers = append(layers, SurfaceLayer(baseRoad()))

	var bridges []Road
	for _, r := range roads {
		bridges = append(bridges, bridge(r))
	}
	layers = append(layers, roadLayerGroup(bridges)...)

	return layers
}

func roadLayerGroup(roads []Road) []*mgl.Layer {
	var casings, fills []*mgl.Layer
	for _, r := range roads {
		casings = append(casings, CasingLayer(r))
		fills = append(fills, FillLayer(r))
	}
	return append(casings, fills...)
}
