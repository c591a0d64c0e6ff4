package shielddef

import (
	"sort"

	"github.com/jamesrr39/goutil/errorsx"
)

const DefaultNetwork = "default"

// ShieldSet is the loaded, validated definition table. It is not modified after
// NewShieldSet returns, so it can be shared between goroutines.
type ShieldSet struct {
	definitionsMap map[string]*Definition // map[network]Definition
	options        Options
}

// NewShieldSet validates every definition and resolves its artwork names against the sprite source.
// The definitions are copied; the caller's values are not modified.
func NewShieldSet(definitions map[string]*Definition, sprites SpriteSource, options Options) (*ShieldSet, errorsx.Error) {
	err := options.Validate()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	shieldSet := &ShieldSet{
		definitionsMap: make(map[string]*Definition),
		options:        options,
	}

	defaultFound := false

	for network, definition := range definitions {
		if definition == nil {
			return nil, errorsx.Errorf("network %q has no definition", network)
		}

		err := definition.Validate()
		if err != nil {
			return nil, errorsx.Wrap(err, "network", network)
		}

		resolved := definition.clone()
		err = resolveArtwork(resolved, sprites)
		if err != nil {
			return nil, errorsx.Wrap(err, "network", network)
		}

		shieldSet.definitionsMap[network] = resolved

		if network == DefaultNetwork {
			defaultFound = true
		}
	}

	if !defaultFound {
		return nil, errorsx.Errorf("default network %q not found in the definitions", DefaultNetwork)
	}

	return shieldSet, nil
}

func resolveArtwork(definition *Definition, sprites SpriteSource) errorsx.Error {
	if !definition.HasArtwork() && definition.NorefArtworkName == "" {
		return nil
	}

	if sprites == nil {
		return errorsx.Errorf("definition uses sprites, but there is no sprite source")
	}

	for _, name := range definition.ArtworkNames {
		art, ok := sprites.Sprite(name)
		if !ok {
			return errorsx.Errorf("sprite %q not found", name)
		}
		definition.Artwork = append(definition.Artwork, art)
	}

	sort.SliceStable(definition.Artwork, func(i, j int) bool {
		widthI, _ := definition.Artwork[i].Size()
		widthJ, _ := definition.Artwork[j].Size()
		return widthI < widthJ
	})

	if definition.NorefArtworkName != "" {
		art, ok := sprites.Sprite(definition.NorefArtworkName)
		if !ok {
			return errorsx.Errorf("sprite %q not found", definition.NorefArtworkName)
		}
		definition.NorefArtwork = art
	}

	return nil
}

// Get returns the definition for a network, and whether the network is in the table
func (s *ShieldSet) Get(network string) (*Definition, bool) {
	definition, ok := s.definitionsMap[network]
	return definition, ok
}

func (s *ShieldSet) Default() *Definition {
	return s.definitionsMap[DefaultNetwork]
}

// Networks lists every network in the table, sorted
func (s *ShieldSet) Networks() []string {
	var networks []string

	for network := range s.definitionsMap {
		networks = append(networks, network)
	}

	sort.Strings(networks)

	return networks
}

func (s *ShieldSet) Options() Options {
	return s.options
}
