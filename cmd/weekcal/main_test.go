package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weekcal/internal/config"
)

func TestApplyFlagsOverridesOnlySetValues(t *testing.T) {
	conf := config.DefaultConfig()
	applyFlags(conf, flagConfig{input: "orario.ics", noRaster: true})

	assert.Equal(t, "orario.ics", conf.Input)
	assert.Equal(t, ".", conf.OutputDir)
	assert.Equal(t, "Europe/Rome", conf.Timezone)
	assert.False(t, conf.RasterEnabled())

	applyFlags(conf, flagConfig{outDir: "/tmp/week", timezone: "UTC"})
	assert.Equal(t, "/tmp/week", conf.OutputDir)
	assert.Equal(t, "UTC", conf.Timezone)
	assert.Equal(t, "orario.ics", conf.Input)
}
