package shielddef

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-shields/shieldtext"
)

// pill networks are all white with a black outline
var fsaPillNetworks = []string{
	"FSA:Z", "FSA:WA", "FSA:TA", "FSA:TN", "FSA:AC", "FSA:HY", "FSA:IL",
	"FSA:OA", "FSA:PM", "FSA:TI", "FSA:SN", "FSA:NC", "FSA:OQ", "FSA:AG",
}

func padding(left, right, top, bottom float64) shieldtext.Padding {
	return shieldtext.Padding{Left: left, Right: right, Top: top, Bottom: bottom}
}

var rectConstraint = shieldtext.Constraint{Kind: shieldtext.ConstraintRect}

// Definitions builds a fresh copy of the built-in network table, keyed by network
func Definitions() map[string]*Definition {
	definitions := map[string]*Definition{
		DefaultNetwork: RoundedRectShield(White, Black, nil, 0, 2),

		// Lutang
		"Lutang Trunks": SpriteShield(White, ellipseConstraint(), padding(2, 2, 5, 2), "shield_lutang_n"),
		"Lutang:N":      SpriteShield(White, ellipseConstraint(), padding(2, 2, 5, 2), "shield_lutang_n"),
		"Lutang:E":      HexagonHorizontalShield(30, Yellow, Black, nil, 2, 0),
		"Lutang:WS":     SpriteShield(Black, ellipseConstraint(), padding(1, 1, 1, 4), "shield_lutang_ws"),
		"Lutang:KT":     SpriteShield(Black, ellipseConstraint(), padding(1, 10, 10, 1), "shield_lutang_kt"),
		"Lutang:BB":     SpriteShield(Black, ellipseConstraint(), padding(2, 2, 3, 3), "shield_lutang_bb"),

		// Federal States of Ardisphere
		"FSA:FS":  SpriteShield(FSAFS, ellipseConstraint(), shieldtext.UniformPadding(2), "shield_fsa_fs"),
		"FSA:TM":  HomePlateDownShield(5, White, Black, nil, 2, 2, 0),
		"FSA:S":   DiamondShield(Black, White, White, 2, 24),
		"FSA:AW":  DiamondShield(MustParseColor("hsl(359, 43%, 19%)"), MustParseColor("hsl(45, 89%, 63%)"), MustParseColor("hsl(45, 89%, 63%)"), 2, 24),
		"FSA:ME":  SpriteShield(Black, ellipseConstraint(), shieldtext.UniformPadding(2), "shield_fsa_me"),
		"FSA:M":   SpriteShield(Black, ellipseConstraint(), shieldtext.UniformPadding(2), "shield_fsa_me"),
		"FSA:AL":  SpriteShield(Black, rectConstraint, padding(5, 2, 2, 2), "shield_fsa_al"),
		"FSA:CL":  SpriteShield(Black, rectConstraint, padding(3, 3, 2, 2), "shield_fsa_cl"),
		"FSA:RP":  SpriteShield(Black, rectConstraint, padding(3, 3, 4, 2), "shield_fsa_rp"),
		"FSA:RS":  SpriteShield(Black, rectConstraint, padding(3, 3, 4, 2), "shield_fsa_rp"),
		"FSA:WM":  SpriteShield(Black, rectConstraint, padding(5, 2, 1, 5), "shield_fsa_wm"),
		"FSA:MK":  SpriteShield(Black, rectConstraint, padding(4, 4, 5, 4), "shield_fsa_mk"),
		"FSA:MC":  SpriteShield(Black, rectConstraint, padding(3, 3, 5, 3), "shield_fsa_mc"),
		"FSA:WI":  SpriteShield(Black, ellipseConstraint(), padding(3, 3, 5, 3), "shield_fsa_wi"),
		"FSA:PQ":  SpriteShield(Black, ellipseConstraint(), padding(5, 5, 5, 3), "shield_fsa_pq"),
		"FSA:RTC": PictorialShield("shield_fsa_rtc"),
	}

	for _, network := range fsaPillNetworks {
		definitions[network] = PillShield(White, Black, nil, 0)
	}

	return definitions
}

// LoadShields builds the built-in table. Every sprite the table names must be in sprites.
func LoadShields(sprites SpriteSource) (*ShieldSet, errorsx.Error) {
	return NewShieldSet(Definitions(), sprites, DefaultOptions())
}
