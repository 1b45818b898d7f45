package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/marpdeck/internal/config"
)

// styleFlags maps the style flags to their config keys.
var styleFlags = map[string]string{
	"aspect-ratio": "style.aspect_ratio",
	"font-size":    "style.font_size",
	"line-spacing": "style.line_spacing",
	"engine":       "render.engine",
}

func addStyleFlags(cmd *cobra.Command) {
	cmd.Flags().String("aspect-ratio", "", "slide aspect ratio: 16:9, 4:3 or 16:10")
	cmd.Flags().Int("font-size", 0, "base font size in px (10-48)")
	cmd.Flags().Float64("line-spacing", 0, "line height multiplier (1.0-2.5)")
	_ = cmd.RegisterFlagCompletionFunc("aspect-ratio", completeOutput("16:9", "4:3", "16:10"))
}

// applyConfigFlagOverrides copies changed flags into v. Flags named after
// a config key map to it directly; extra maps other flag names to keys.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, extra map[string]string) {
	for _, opt := range config.GetConfigOptions() {
		flag := cmd.Flags().Lookup(opt.Key)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, opt.Key, opt.Key)
	}
	for flagName, key := range extra {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		setFromFlag(cmd, v, flagName, key)
	}
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(flagName); err == nil {
			v.Set(key, val)
		}
	case "int":
		if val, err := cmd.Flags().GetInt(flagName); err == nil {
			v.Set(key, val)
		}
	case "float64":
		if val, err := cmd.Flags().GetFloat64(flagName); err == nil {
			v.Set(key, val)
		}
	case "stringSlice":
		if val, err := cmd.Flags().GetStringSlice(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}
