package speedassigner

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/roadroute/pkg"
	"github.com/spf13/viper"
)

var ErrInvalidSpeed = errors.New("speed must be a non-negative number")

// Profile maps an osm highway classification to a nominal speed in km/h.
type Profile struct {
	Speeds        map[string]float64
	DefaultSpeed  float64 // for absent or unknown classifications
	FallbackSpeed float64 // used by the time cost when an edge has no positive speed
}

// reference speed table (km/h).
func DefaultProfile() Profile {
	return Profile{
		Speeds: map[string]float64{
			"motorway":       100,
			"motorroad":      90,
			"trunk":          80,
			"motorway_link":  70,
			"primary":        70,
			"trunk_link":     65,
			"primary_link":   60,
			"secondary":      60,
			"secondary_link": 50,
			"tertiary":       50,
			"tertiary_link":  40,
			"unclassified":   30,
			"road":           30,
			"residential":    20,
			"service":        15,
			"track":          15,
			"living_street":  10,
			"path":           5,
			"pedestrian":     5,
			"footway":        5,
			"construction":   5,
		},
		DefaultSpeed:  pkg.DEFAULT_SPEED_KMH,
		FallbackSpeed: pkg.FALLBACK_SPEED_KMH,
	}
}

// ProfileFromConfig overlays speed_profile.default_speed, speed_profile.fallback_speed and
// speed_profile.speeds.<class> from viper on top of the reference table.
func ProfileFromConfig() (Profile, error) {
	p := DefaultProfile()
	if viper.IsSet("speed_profile.default_speed") {
		p.DefaultSpeed = viper.GetFloat64("speed_profile.default_speed")
	}
	if viper.IsSet("speed_profile.fallback_speed") {
		p.FallbackSpeed = viper.GetFloat64("speed_profile.fallback_speed")
	}
	for class := range viper.GetStringMap("speed_profile.speeds") {
		p.Speeds[class] = viper.GetFloat64("speed_profile.speeds." + class)
	}
	return p, p.Validate()
}

func (p Profile) Validate() error {
	if !validSpeed(p.DefaultSpeed) {
		return fmt.Errorf("%w: default speed %v", ErrInvalidSpeed, p.DefaultSpeed)
	}
	if !validSpeed(p.FallbackSpeed) {
		return fmt.Errorf("%w: fallback speed %v", ErrInvalidSpeed, p.FallbackSpeed)
	}
	for class, speed := range p.Speeds {
		if !validSpeed(speed) {
			return fmt.Errorf("%w: %s %v", ErrInvalidSpeed, class, speed)
		}
	}
	return nil
}

func validSpeed(s float64) bool {
	return !math.IsNaN(s) && !math.IsInf(s, 0) && s >= 0
}

// SpeedOf returns the nominal speed of a classification, DefaultSpeed when it is absent or not in the table.
func (p Profile) SpeedOf(classification string) float64 {
	if speed, ok := p.Speeds[classification]; ok {
		return speed
	}
	return p.DefaultSpeed
}

// Classifications returns the table's classifications from fastest to slowest, ties by name.
func (p Profile) Classifications() []string {
	classes := make([]string, 0, len(p.Speeds))
	for class := range p.Speeds {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		si, sj := p.Speeds[classes[i]], p.Speeds[classes[j]]
		if si != sj {
			return si > sj
		}
		return classes[i] < classes[j]
	})
	return classes
}
