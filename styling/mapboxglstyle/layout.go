package mapboxglstyle

// Layout and Paint values are either plain values or expressions
type Layout struct {
	Visibility            string      `json:"visibility,omitempty"`
	LineCap               string      `json:"line-cap,omitempty"`
	LineJoin              string      `json:"line-join,omitempty"`
	LineSortKey           interface{} `json:"line-sort-key,omitempty"`
	SymbolPlacement       string      `json:"symbol-placement,omitempty"`
	SymbolSpacing         float64     `json:"symbol-spacing,omitempty"`
	IconImage             interface{} `json:"icon-image,omitempty"`
	IconRotationAlignment string      `json:"icon-rotation-alignment,omitempty"`
	IconSize              float64     `json:"icon-size,omitempty"`
	IconPadding           float64     `json:"icon-padding,omitempty"`
}

type Paint struct {
	BackgroundColor string      `json:"background-color,omitempty"`
	LineColor       interface{} `json:"line-color,omitempty"`
	LineWidth       interface{} `json:"line-width,omitempty"`
	LineOpacity     interface{} `json:"line-opacity,omitempty"`
	LineBlur        float64     `json:"line-blur,omitempty"`
	LineDashArray   interface{} `json:"line-dasharray,omitempty"`
}
