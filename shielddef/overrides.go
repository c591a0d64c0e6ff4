package shielddef

import (
	"image/color"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
)

// NetworkOverride is one [networks."<network>"] table of an overrides file.
// Either Shape or Sprites describes a new badge, or Base names an existing network to start from.
type NetworkOverride struct {
	Base    string   `toml:"base"`
	Shape   string   `toml:"shape"`
	Sprites []string `toml:"sprites"`

	Fill   string `toml:"fill"`
	Stroke string `toml:"stroke"`
	Text   string `toml:"text"`

	Width  float64 `toml:"width"`
	Radius float64 `toml:"radius"`
	Offset float64 `toml:"offset"`
	Angle  float64 `toml:"angle"`

	Constraint string    `toml:"constraint"`
	Padding    []float64 `toml:"padding"`

	Banners         []string          `toml:"banners"`
	NoText          bool              `toml:"notext"`
	NorefSprite     string            `toml:"noref_sprite"`
	VerticalReflect bool              `toml:"vertical_reflect"`
	Lighten         string            `toml:"lighten"`
	Darken          string            `toml:"darken"`
	RefsByWayName   map[string]string `toml:"refs_by_way_name"`
}

type Overrides struct {
	Networks map[string]NetworkOverride `toml:"networks"`
}

type shapeColors struct {
	fill, stroke, text color.Color
}

type shapeBuilder func(o NetworkOverride, c shapeColors) *Definition

var shapeBuilders = map[string]shapeBuilder{
	"roundedRect": func(o NetworkOverride, c shapeColors) *Definition {
		return RoundedRectShield(c.fill, c.stroke, c.text, o.Width, o.Radius)
	},
	"oval": func(o NetworkOverride, c shapeColors) *Definition {
		return OvalShield(c.fill, c.stroke, c.text, o.Width)
	},
	"circle": func(o NetworkOverride, c shapeColors) *Definition {
		return CircleShield(c.fill, c.stroke, c.text)
	},
	"pill": func(o NetworkOverride, c shapeColors) *Definition {
		return PillShield(c.fill, c.stroke, c.text, o.Width)
	},
	"escutcheonDown": func(o NetworkOverride, c shapeColors) *Definition {
		return EscutcheonDownShield(o.Offset, c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
	"fishheadDown": func(o NetworkOverride, c shapeColors) *Definition {
		return FishheadDownShield(c.fill, c.stroke, c.text, o.Width)
	},
	"triangleDown": func(o NetworkOverride, c shapeColors) *Definition {
		return TriangleDownShield(c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
	"trapezoidDown": func(o NetworkOverride, c shapeColors) *Definition {
		return TrapezoidDownShield(o.Angle, c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
	"trapezoidUp": func(o NetworkOverride, c shapeColors) *Definition {
		return TrapezoidUpShield(o.Angle, c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
	"diamond": func(o NetworkOverride, c shapeColors) *Definition {
		return DiamondShield(c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
	"pentagonUp": func(o NetworkOverride, c shapeColors) *Definition {
		return PentagonUpShield(o.Offset, o.Angle, c.fill, c.stroke, c.text, o.Radius, 0, o.Width)
	},
	"homePlateDown": func(o NetworkOverride, c shapeColors) *Definition {
		return HomePlateDownShield(o.Offset, c.fill, c.stroke, c.text, o.Radius, o.Radius, o.Width)
	},
	"homePlateUp": func(o NetworkOverride, c shapeColors) *Definition {
		return HomePlateUpShield(o.Offset, c.fill, c.stroke, c.text, o.Radius, o.Radius, o.Width)
	},
	"hexagonVertical": func(o NetworkOverride, c shapeColors) *Definition {
		return HexagonVerticalShield(o.Offset, c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
	"hexagonHorizontal": func(o NetworkOverride, c shapeColors) *Definition {
		return HexagonHorizontalShield(o.Angle, c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
	"octagonVertical": func(o NetworkOverride, c shapeColors) *Definition {
		return OctagonVerticalShield(o.Offset, o.Angle, c.fill, c.stroke, c.text, o.Radius, o.Width)
	},
}

// ShapeNames lists the shape names an overrides file may use, sorted
func ShapeNames() []string {
	var names []string
	for name := range shapeBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseOverrides reads an overrides document. Keys it does not know are an error.
func ParseOverrides(data []byte) (*Overrides, errorsx.Error) {
	overrides := new(Overrides)
	metadata, err := toml.Decode(string(data), overrides)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	undecoded := metadata.Undecoded()
	if len(undecoded) != 0 {
		var keys []string
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, errorsx.Errorf("unknown keys in overrides: %s", strings.Join(keys, ", "))
	}

	return overrides, nil
}

func LoadOverrides(fs gofs.Fs, path string) (*Overrides, errorsx.Error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	overrides, err := ParseOverrides(data)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	return overrides, nil
}

// Apply adds or replaces entries of definitions. Bases refer to the table as it was before Apply.
func (o *Overrides) Apply(definitions map[string]*Definition) errorsx.Error {
	original := make(map[string]*Definition, len(definitions))
	for network, definition := range definitions {
		original[network] = definition
	}

	var networks []string
	for network := range o.Networks {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	for _, network := range networks {
		definition, err := o.Networks[network].build(original)
		if err != nil {
			return errorsx.Wrap(err, "network", network)
		}
		definitions[network] = definition
	}

	return nil
}

func parseOptionalColor(value string) (color.Color, errorsx.Error) {
	if value == "" {
		return nil, nil
	}
	c, err := ParseColor(value)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (o NetworkOverride) build(existing map[string]*Definition) (*Definition, errorsx.Error) {
	set := 0
	for _, isSet := range []bool{o.Base != "", o.Shape != "", len(o.Sprites) != 0} {
		if isSet {
			set++
		}
	}
	if set != 1 {
		return nil, errorsx.Errorf("exactly one of base, shape and sprites must be given")
	}

	var colors shapeColors
	for _, field := range []struct {
		value string
		dst   *color.Color
	}{
		{o.Fill, &colors.fill},
		{o.Stroke, &colors.stroke},
		{o.Text, &colors.text},
	} {
		c, err := parseOptionalColor(field.value)
		if err != nil {
			return nil, err
		}
		*field.dst = c
	}

	var definition *Definition
	switch {
	case o.Base != "":
		base, ok := existing[o.Base]
		if !ok {
			return nil, errorsx.Errorf("base network %q not found", o.Base)
		}
		definition = base.clone()
		if colors.text != nil {
			definition.TextColor = colors.text
		}
	case o.Shape != "":
		builder, ok := shapeBuilders[o.Shape]
		if !ok {
			return nil, errorsx.Errorf("unknown shape %q. Known shapes: %s", o.Shape, strings.Join(ShapeNames(), ", "))
		}
		if colors.fill == nil {
			return nil, errorsx.Errorf("shape %q needs a fill color", o.Shape)
		}
		definition = builder(o, colors)
	default:
		textColor := colors.text
		if textColor == nil {
			textColor = Black
		}
		definition = SpriteShield(textColor, shieldtext.Constraint{Kind: shieldtext.ConstraintRect}, shieldtext.UniformPadding(2), o.Sprites...)
	}

	if o.Constraint != "" {
		kind, err := shieldtext.ParseConstraintKind(o.Constraint)
		if err != nil {
			return nil, err
		}
		definition.TextConstraint = shieldtext.Constraint{Kind: kind, Radius: o.Radius}
	}

	if o.Padding != nil {
		padding, err := paddingFromList(o.Padding)
		if err != nil {
			return nil, err
		}
		definition.Padding = padding
	}

	definition.Banners = append(definition.Banners, o.Banners...)
	definition.NoText = definition.NoText || o.NoText
	definition.VerticalReflect = definition.VerticalReflect || o.VerticalReflect
	if o.NorefSprite != "" {
		definition.NorefArtworkName = o.NorefSprite
	}

	lighten, err := parseOptionalColor(o.Lighten)
	if err != nil {
		return nil, err
	}
	if lighten != nil {
		definition.ColorLighten = lighten
	}

	darken, err := parseOptionalColor(o.Darken)
	if err != nil {
		return nil, err
	}
	if darken != nil {
		definition.ColorDarken = darken
	}

	if len(o.RefsByWayName) != 0 {
		definition.RefsByWayName = make(map[string]string, len(o.RefsByWayName))
		for wayName, ref := range o.RefsByWayName {
			definition.RefsByWayName[wayName] = ref
		}
	}

	return definition, nil
}

// paddingFromList reads [all], [vertical, horizontal] or [left, right, top, bottom]
func paddingFromList(values []float64) (shieldtext.Padding, errorsx.Error) {
	var padding shieldtext.Padding
	switch len(values) {
	case 1:
		padding = shieldtext.UniformPadding(values[0])
	case 2:
		padding = shieldtext.Padding{Left: values[1], Right: values[1], Top: values[0], Bottom: values[0]}
	case 4:
		padding = shieldtext.Padding{Left: values[0], Right: values[1], Top: values[2], Bottom: values[3]}
	default:
		return padding, errorsx.Errorf("padding needs 1, 2 or 4 values, but got %d", len(values))
	}

	err := padding.Validate()
	if err != nil {
		return padding, err
	}

	return padding, nil
}
