package fluentlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	cases := map[string]Config{
		"no prefix":  {Host: "localhost", Port: 24224},
		"no host":    {Port: 24224, TagPrefix: "property-client"},
		"zero port":  {Host: "localhost", TagPrefix: "property-client"},
		"large port": {Host: "localhost", Port: 70000, TagPrefix: "property-client"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			client, err := NewClient(cfg)
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}
