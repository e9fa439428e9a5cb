package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"", "dev", "prod", "JSON"} {
		l, err := New(mode)
		require.NoError(t, err, "mode %q", mode)
		assert.NotNil(t, l.SugaredLogger)
	}
}

func TestNopWith(t *testing.T) {
	l := Nop().With("profile", "drone")
	l.Info("document parsed", "records", 3)
	l.Warn("extraction defect", "kind", "missing-tag")
	l.Sync()
}
