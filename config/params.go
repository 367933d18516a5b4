package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/key"
	"github.com/vidscrub/vidscrub/timeline"
)

// TimelineParams builds the timeline tuning from the current configuration.
func TimelineParams() (timeline.Params, error) {
	params := timeline.DefaultParams()

	params.PixelsPerSecond = viper.GetFloat64(key.TimelinePixelsPerSecond)
	params.VelocityMultiplier = viper.GetFloat64(key.TimelineVelocityMultiplier)
	params.ReleaseWindow = time.Duration(viper.GetInt(key.TimelineReleaseWindow)) * time.Millisecond
	params.SpeedRate = viper.GetFloat64(key.TimelineSpeedRate)
	params.AllowSpeedWhileInteracting = viper.GetBool(key.TimelineAllowSpeedWhileInteracting)

	params.MinVelocityForInertia = viper.GetFloat64(key.InertiaMinVelocity)
	params.DecayRate = viper.GetFloat64(key.InertiaDecayRate)
	params.BoundaryZone = viper.GetFloat64(key.InertiaBoundaryZone)
	params.BoundaryDecayFactor = viper.GetFloat64(key.InertiaBoundaryDecayFactor)
	params.StopThreshold = viper.GetFloat64(key.InertiaStopThreshold)
	params.FlingGain = viper.GetFloat64(key.InertiaFlingGain)
	params.DurationScaledGain = viper.GetBool(key.InertiaDurationScaledGain)

	rate := viper.GetInt(key.InertiaTickRate)
	if rate <= 0 {
		return params, fmt.Errorf("%s must be positive, got %d", key.InertiaTickRate, rate)
	}
	params.TickInterval = time.Second / time.Duration(rate)

	params.PeriodicFeedbackInterval = viper.GetFloat64(key.HapticsPeriodicInterval)
	params.PeriodicIntensity = viper.GetFloat64(key.HapticsPeriodicIntensity)

	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("invalid timeline configuration: %w", err)
	}

	return params, nil
}
