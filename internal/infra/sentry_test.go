package infra

import (
	"context"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"mutants.dev/backend/internal/app/appconfig"
)

func TestSentryInit(t *testing.T) {
	type testCase struct {
		name       string
		dsn        string
		wantClient bool
	}

	testCases := []testCase{
		{name: "disabled without dsn", dsn: "", wantClient: false},
		{name: "flushes on stop", dsn: "https://public@sentry.example.com/1", wantClient: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sentry.CurrentHub().BindClient(nil)
			t.Cleanup(func() {
				sentry.CurrentHub().BindClient(nil)
			})

			lc := fxtest.NewLifecycle(t)
			conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{SentryDSN: tc.dsn}}
			require.NoError(t, SentryInit(conf, lc))

			assert.Equal(t, tc.wantClient, sentry.CurrentHub().Client() != nil)

			require.NoError(t, lc.Start(context.Background()))
			require.NoError(t, lc.Stop(context.Background()))
		})
	}
}
