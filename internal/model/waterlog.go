// Package model defines domain types for hidralife intake logs, stats and settings.
package model

import "time"

// WaterLog is one recorded intake event. Logs are never edited; the only
// removal path is undoing the most recent one.
type WaterLog struct {
	ID        string `json:"id" yaml:"id"`
	Amount    int    `json:"amount" yaml:"amount"`       // milliliters, always > 0
	Timestamp int64  `json:"timestamp" yaml:"timestamp"` // epoch milliseconds
}

// Time returns the log timestamp as a time.Time.
func (l WaterLog) Time() time.Time {
	return time.UnixMilli(l.Timestamp)
}

// ContainerSize is a preset intake amount in milliliters.
type ContainerSize int

// Preset container sizes.
const (
	SizeSmall  ContainerSize = 200
	SizeMedium ContainerSize = 350
	SizeLarge  ContainerSize = 500
	SizeBottle ContainerSize = 750
)

// Containers lists the presets in display order.
var Containers = []ContainerSize{SizeSmall, SizeMedium, SizeLarge, SizeBottle}

// Name returns the CLI name of the preset, or "" for a custom amount.
func (c ContainerSize) Name() string {
	switch c {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	case SizeBottle:
		return "bottle"
	default:
		return ""
	}
}

// Label returns the human-facing button label.
func (c ContainerSize) Label() string {
	switch c {
	case SizeSmall:
		return "Small cup"
	case SizeMedium:
		return "Medium cup"
	case SizeLarge:
		return "Large"
	case SizeBottle:
		return "Bottle"
	default:
		return "Custom"
	}
}

// ML returns the amount in milliliters.
func (c ContainerSize) ML() int {
	return int(c)
}

// ContainerByName looks up a preset by its CLI name.
func ContainerByName(name string) (ContainerSize, bool) {
	for _, c := range Containers {
		if c.Name() == name {
			return c, true
		}
	}
	return 0, false
}
