package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendTitleHook appends a marker to the title, to observe chaining order.
type appendTitleHook struct {
	marker string
}

func (h appendTitleHook) Handle(_ uint64, cfg *DeviceConfig) *DeviceConfig {
	cfg.Title += h.marker
	return cfg
}

// nilHook returns nil; the pipeline must keep the previous value.
type nilHook struct{}

func (nilHook) Handle(_ uint64, _ *DeviceConfig) *DeviceConfig {
	return nil
}

func TestPipelineApply(t *testing.T) {
	p := Pipeline{
		appendTitleHook{marker: "a"},
		nilHook{},
		appendTitleHook{marker: "b"},
	}

	out := p.Apply(1, &DeviceConfig{Title: "t"})

	require.NotNil(t, out)
	assert.Equal(t, "tab", out.Title, "each hook must receive the previous hook's output")
}

func TestPipelineEmpty(t *testing.T) {
	cfg := &DeviceConfig{Title: "untouched"}
	out := Pipeline{}.Apply(1, cfg)

	assert.Same(t, cfg, out)
}

func TestServerTimeHook(t *testing.T) {
	out := ServerTimeHook{}.Handle(1, &DeviceConfig{})

	require.NotNil(t, out.ServerTime)
	assert.Positive(t, *out.ServerTime)
}
