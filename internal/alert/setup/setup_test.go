package setup_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salon/internal/alert/setup"
	"github.com/MrJamesThe3rd/salon/internal/config"
)

func TestSinks(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cfg *config.Config)
		console bool
		want    []string
	}{
		{
			name:  "NothingEnabled",
			setup: func(*config.Config) {},
		},
		{
			name:    "ConsoleOnly",
			setup:   func(cfg *config.Config) { cfg.Alert.Console = true },
			console: true,
			want:    []string{"console"},
		},
		{
			name:  "ConsoleWithoutWriter",
			setup: func(cfg *config.Config) { cfg.Alert.Console = true },
		},
		{
			name: "TwilioAndKafka",
			setup: func(cfg *config.Config) {
				cfg.Alert.TwilioAccountSID = "AC123"
				cfg.Alert.TwilioAuthToken = "token"
				cfg.Alert.TwilioFrom = "+15550000000"
				cfg.Alert.TwilioTo = "+5511999990000"
				cfg.Alert.KafkaBrokers = []string{"localhost:9092"}
				cfg.Alert.KafkaTopic = "salon.alerts"
			},
			want: []string{"sms", "kafka"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config.Config
			tt.setup(&cfg)

			var w io.Writer
			if tt.console {
				w = &bytes.Buffer{}
			}

			sinks, closeAll, err := setup.Sinks(&cfg, w)
			require.NoError(t, err)

			var got []string
			for _, s := range sinks {
				got = append(got, s.Name())
			}

			assert.Equal(t, tt.want, got)
			assert.NoError(t, closeAll())
		})
	}
}
