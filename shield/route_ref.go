package shield

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/osm"
)

const (
	// IdentifierPrefix starts every image identifier the style's shield layer asks for
	IdentifierPrefix = "shield_"

	MaxRefLength = 6
)

var ErrMalformedIdentifier = errors.New("malformed shield identifier")

// RouteRef is the description of one route, as encoded in the image identifier
type RouteRef struct {
	Network string
	Ref     string
	WayName string
}

// IsValidRef checks whether a ref is short enough to be drawn inside a badge
func IsValidRef(ref string) bool {
	length := utf8.RuneCountInString(ref)
	return length > 0 && length <= MaxRefLength
}

// Identifier encodes the route the same way the map style does:
//
//	shield_\n<network>=<ref>\n<way name>
func (r *RouteRef) Identifier() string {
	return fmt.Sprintf("%s\n%s=%s\n%s", IdentifierPrefix, r.Network, r.Ref, r.WayName)
}

func (r *RouteRef) String() string {
	return fmt.Sprintf("%s=%s (%q)", r.Network, r.Ref, r.WayName)
}

// ParseIdentifier decodes an image identifier.
// A bare prefix, with nothing after it, means the road has no route and returns nil with no error.
func ParseIdentifier(id string) (*RouteRef, errorsx.Error) {
	if id == IdentifierPrefix {
		return nil, nil
	}

	segments := strings.Split(id, "\n")
	if len(segments) < 2 || segments[0] != IdentifierPrefix {
		return nil, errorsx.Wrap(ErrMalformedIdentifier, "id", id)
	}

	networkAndRef := strings.SplitN(segments[1], "=", 2)
	network := networkAndRef[0]
	if network == "" {
		return nil, errorsx.Wrap(ErrMalformedIdentifier, "id", id, "reason", "empty network")
	}

	var ref string
	if len(networkAndRef) == 2 {
		ref = networkAndRef[1]
	}

	var wayName string
	if len(segments) > 2 {
		wayName = strings.Join(segments[2:], "\n")
	}

	return &RouteRef{
		Network: network,
		Ref:     ref,
		WayName: wayName,
	}, nil
}

// RouteRefsFromRelation extracts the routes described by a route relation.
// "ref" values holding a list ("A1;A2") give one RouteRef per entry.
func RouteRefsFromRelation(relation *osm.Relation) []RouteRef {
	if relation.Tags.Find("type") != "route" {
		return nil
	}

	network := relation.Tags.Find("network")
	if network == "" {
		return nil
	}

	name := relation.Tags.Find("name")
	refTag := relation.Tags.Find("ref")

	var routeRefs []RouteRef
	for _, ref := range strings.Split(refTag, ";") {
		routeRefs = append(routeRefs, RouteRef{
			Network: network,
			Ref:     strings.TrimSpace(ref),
			WayName: name,
		})
	}

	return routeRefs
}

// Dedupe returns the distinct routes, sorted by network and then ref
func Dedupe(routeRefs []RouteRef) []RouteRef {
	seen := make(map[RouteRef]bool)
	var deduped []RouteRef
	for _, routeRef := range routeRefs {
		if seen[routeRef] {
			continue
		}
		seen[routeRef] = true
		deduped = append(deduped, routeRef)
	}

	sort.Slice(deduped, func(a, b int) bool {
		if deduped[a].Network != deduped[b].Network {
			return deduped[a].Network < deduped[b].Network
		}
		if deduped[a].Ref != deduped[b].Ref {
			return deduped[a].Ref < deduped[b].Ref
		}
		return deduped[a].WayName < deduped[b].WayName
	})

	return deduped
}
