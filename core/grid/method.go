package grid

import (
	"fmt"
	"strings"
)

// InterpolationMethod selects the weight stencil used along one axis.
type InterpolationMethod int

const (
	// Linear weights the two points bracketing the target.
	Linear InterpolationMethod = iota
	// Cubic uses a cubic Hermite stencil over up to four points.
	Cubic
)

func (m InterpolationMethod) String() string {
	switch m {
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("InterpolationMethod(%d)", int(m))
	}
}

// ParseInterpolationMethod converts a configuration string into a method.
// An empty string selects Linear.
func ParseInterpolationMethod(s string) (InterpolationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	default:
		return Linear, fmt.Errorf("unknown interpolation method %q", s)
	}
}

// ExtrapolationMethod defines how targets outside an axis range are handled.
type ExtrapolationMethod int

const (
	// ExtrapolateLinear extends the boundary interval linearly.
	ExtrapolateLinear ExtrapolationMethod = iota
	// ExtrapolateConstant clamps the target to the nearest axis bound.
	ExtrapolateConstant
	// ExtrapolateError rejects targets outside the axis range.
	ExtrapolateError
)

func (e ExtrapolationMethod) String() string {
	switch e {
	case ExtrapolateLinear:
		return "linear"
	case ExtrapolateConstant:
		return "constant"
	case ExtrapolateError:
		return "error"
	default:
		return fmt.Sprintf("ExtrapolationMethod(%d)", int(e))
	}
}

// ParseExtrapolationMethod converts a configuration string into a policy.
// An empty string selects ExtrapolateLinear.
func ParseExtrapolationMethod(s string) (ExtrapolationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return ExtrapolateLinear, nil
	case "constant", "clamp":
		return ExtrapolateConstant, nil
	case "error":
		return ExtrapolateError, nil
	default:
		return ExtrapolateLinear, fmt.Errorf("unknown extrapolation method %q", s)
	}
}
