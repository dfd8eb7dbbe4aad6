package lod

// Tier is a discrete detail level assigned by camera distance. Lower
// values are more detailed.
type Tier int

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
	TierHidden
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "HIGH"
	case TierMedium:
		return "MEDIUM"
	case TierLow:
		return "LOW"
	default:
		return "HIDDEN"
	}
}

// policy holds the shadow and material-quality flags applied per tier.
// detailLoss scales how far roughness/metalness are nudged away from
// their authored values as a visual cue of reduced detail.
type policy struct {
	castShadow    bool
	receiveShadow bool
	detailLoss    float32
}

var policies = [3]policy{
	TierHigh:   {castShadow: true, receiveShadow: true, detailLoss: 0},
	TierMedium: {castShadow: true, receiveShadow: false, detailLoss: 0.35},
	TierLow:    {castShadow: false, receiveShadow: false, detailLoss: 0.7},
}
