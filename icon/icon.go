// Package icon renders status and timeline symbols in the variant chosen by icons.variant.
//
// Variants are emoji, nerd-font glyphs, plain text, kaomoji and Unicode squares.
package icon

import (
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/key"
)

// variants is ordered like the columns of the registry.
var variants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return lo.Clone(variants)
}

// glyphs holds one rendering per variant.
type glyphs [5]string

// Get renders i in the configured variant. An unknown variant renders nothing.
func Get(i Icon) string {
	column := lo.IndexOf(variants, viper.GetString(key.IconsVariant))
	if column < 0 {
		return ""
	}

	return icons[i][column]
}
