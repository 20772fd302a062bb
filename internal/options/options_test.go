package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConfig struct {
	depth  int
	scheme string
	strict bool
}

func (c *fakeConfig) setDepth(n int) error {
	if n <= 0 {
		return errors.New("depth must be positive")
	}
	c.depth = n

	return nil
}

func TestNew(t *testing.T) {
	cfg := &fakeConfig{}

	t.Run("applies fallible option", func(t *testing.T) {
		opt := New(func(c *fakeConfig) error { return c.setDepth(512) })

		require.NoError(t, opt.apply(cfg))
		require.Equal(t, 512, cfg.depth)
	})

	t.Run("propagates option error", func(t *testing.T) {
		opt := New(func(c *fakeConfig) error { return c.setDepth(-1) })

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "depth must be positive")
	})
}

func TestNoError(t *testing.T) {
	cfg := &fakeConfig{}

	opt := NoError(func(c *fakeConfig) { c.scheme = "zlib" })
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, "zlib", cfg.scheme)
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &fakeConfig{}
		err := Apply(cfg,
			New(func(c *fakeConfig) error { return c.setDepth(8) }),
			NoError(func(c *fakeConfig) { c.scheme = "gzip" }),
			NoError(func(c *fakeConfig) { c.strict = true }),
		)

		require.NoError(t, err)
		require.Equal(t, 8, cfg.depth)
		require.Equal(t, "gzip", cfg.scheme)
		require.True(t, cfg.strict)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &fakeConfig{}
		err := Apply(cfg,
			New(func(c *fakeConfig) error { return c.setDepth(4) }),
			New(func(c *fakeConfig) error { return c.setDepth(0) }),
			NoError(func(c *fakeConfig) { c.scheme = "unreached" }),
		)

		require.Error(t, err)
		require.Equal(t, 4, cfg.depth)
		require.Empty(t, cfg.scheme, "options after the failing one must not run")
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &fakeConfig{}
		require.NoError(t, Apply(cfg))
	})
}
