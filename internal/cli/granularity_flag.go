package cli

import (
	"github.com/MrJohz/timesheettool/internal/aggregate"
	"github.com/spf13/pflag"
)

// granularityFlag is a pflag.Value for the --granularity flag, validating
// the name at parse time rather than inside the command.
type granularityFlag struct {
	value *aggregate.Granularity
}

var _ pflag.Value = (*granularityFlag)(nil)

func newGranularityFlag(value *aggregate.Granularity) *granularityFlag {
	return &granularityFlag{value: value}
}

func (f *granularityFlag) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f *granularityFlag) Set(s string) error {
	g, err := aggregate.ParseGranularity(s)
	if err != nil {
		return err
	}
	*f.value = g
	return nil
}

func (f *granularityFlag) Type() string {
	return "granularity"
}
