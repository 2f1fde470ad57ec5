/*package io reads the configuration files which control how interpolators are
built and evaluated.
*/
package io

import (
	"fmt"
	"runtime"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/ndinterp/math/interpolate"
)

const ExampleInterpolatorFile = `[Interpolator]

# Every parameter in this section is optional.

# Scheme used to estimate the slopes at interior grid points. Centered
# averages the two adjacent secants (this is the scheme LHAPDF uses).
# Monotone uses a weighted harmonic mean of the secants and never overshoots
# monotonic data. Default is Centered.
# Tangent = Centered

# Number of goroutines used to evaluate large batches of points. Default is
# the number of logical cores.
# Workers = 0

# Prints batch sizes and timings to stderr.
# Log = false`

// InterpolatorConfig holds the contents of an [Interpolator] section.
type InterpolatorConfig struct {
	// Optional
	Tangent string
	Workers int
	Log     bool
}

type InterpolatorWrapper struct {
	Interpolator InterpolatorConfig
}

func DefaultInterpolatorWrapper() *InterpolatorWrapper {
	con := InterpolatorConfig{}
	con.Tangent = interpolate.Centered.String()
	return &InterpolatorWrapper{con}
}

func (con *InterpolatorConfig) ValidTangent() bool {
	_, err := con.TangentScheme()
	return err == nil
}
func (con *InterpolatorConfig) ValidWorkers() bool {
	return con.Workers >= 0
}

// CheckInit returns an error describing the first invalid field of con and
// fills in the defaults of fields that have been left unset.
func (con *InterpolatorConfig) CheckInit() error {
	if !con.ValidTangent() {
		return fmt.Errorf(
			"Unrecognized 'Tangent' value, '%s'. Recognized values are "+
				"'Centered' and 'Monotone'.", con.Tangent,
		)
	} else if !con.ValidWorkers() {
		return fmt.Errorf(
			"'Workers' must be non-negative, but is %d.", con.Workers,
		)
	}

	if con.Workers == 0 {
		con.Workers = runtime.NumCPU()
	}

	return nil
}

// TangentScheme returns the slope scheme named by the Tangent field. Case is
// ignored and an empty value is the default scheme.
func (con *InterpolatorConfig) TangentScheme() (interpolate.Tangent, error) {
	if con.Tangent == "" {
		return interpolate.Centered, nil
	}
	for _, tan := range []interpolate.Tangent{
		interpolate.Centered, interpolate.Monotone,
	} {
		if strings.EqualFold(tan.String(), con.Tangent) {
			return tan, nil
		}
	}
	return 0, fmt.Errorf("Unrecognized tangent scheme '%s'.", con.Tangent)
}

// Options converts the config into the options accepted by the interpolator
// constructors.
func (con *InterpolatorConfig) Options() ([]interpolate.Option, error) {
	tan, err := con.TangentScheme()
	if err != nil {
		return nil, err
	}
	return []interpolate.Option{interpolate.WithTangent(tan)}, nil
}

// ReadInterpolatorConfig reads and checks the [Interpolator] section of the
// given config file.
func ReadInterpolatorConfig(fname string) (*InterpolatorConfig, error) {
	wrap := DefaultInterpolatorWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.Interpolator.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Interpolator, nil
}

// ParseInterpolatorConfig is ReadInterpolatorConfig for a config held in
// memory.
func ParseInterpolatorConfig(text string) (*InterpolatorConfig, error) {
	wrap := DefaultInterpolatorWrapper()
	if err := gcfg.ReadStringInto(wrap, text); err != nil {
		return nil, err
	}
	if err := wrap.Interpolator.CheckInit(); err != nil {
		return nil, err
	}
	return &wrap.Interpolator, nil
}
