package confkit_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener-api/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("SCREENER_CONF_DIR", "/opt/screener")
	t.Setenv("SCREENER_SUBDIR", "local")

	tests := []struct {
		name string
		base string
		file string
		want string
	}{
		{"absolute stays put", "/srv/etc", "/etc/market.yaml", "/etc/market.yaml"},
		{"relative joins base", "/srv/etc", "tickers.yaml", "/srv/etc/tickers.yaml"},
		{"env var expands to absolute", "/srv/etc", "${SCREENER_CONF_DIR}/market.yaml", "/opt/screener/market.yaml"},
		{"env var expands then joins", "/srv/etc", "$SCREENER_SUBDIR/market.yaml", "/srv/etc/local/market.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, confkit.ResolvePath(tt.base, tt.file))
		})
	}
}

func TestBaseDir(t *testing.T) {
	assert.Equal(t, "/srv/etc", confkit.BaseDir("/srv/etc/screener.yaml"))
	assert.Equal(t, "etc", confkit.BaseDir("etc/screener.yaml"))
	assert.Equal(t, "/", confkit.BaseDir("/screener.yaml"))
}

type sectionConf struct {
	Name  string `json:",default=screener"`
	Quote string `json:",optional"`
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "section.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Quote: ${SECTION_QUOTE}\n"), 0o644))
	t.Setenv("SECTION_QUOTE", "USDT")

	cfg, err := confkit.LoadFile[sectionConf](path, true)
	require.NoError(t, err)
	assert.Equal(t, "screener", cfg.Name, "tag defaults apply")
	assert.Equal(t, "USDT", cfg.Quote, "env substitution honours UseEnv")

	_, err = confkit.LoadFile[sectionConf](filepath.Join(dir, "missing.yaml"), false)
	assert.Error(t, err)
}

func TestSectionHydrate(t *testing.T) {
	t.Run("no file configured", func(t *testing.T) {
		s := &confkit.Section[sectionConf]{}
		err := s.Hydrate("/srv/etc", func(string) (*sectionConf, error) {
			t.Fatal("loader must not run without a file")
			return nil, nil
		})
		require.NoError(t, err)
		assert.Nil(t, s.Value)
	})

	t.Run("resolves against base and stores value", func(t *testing.T) {
		s := &confkit.Section[sectionConf]{File: "market.yaml"}
		err := s.Hydrate("/srv/etc", func(path string) (*sectionConf, error) {
			assert.Equal(t, "/srv/etc/market.yaml", path)
			return &sectionConf{Name: "mexc"}, nil
		})
		require.NoError(t, err)
		require.NotNil(t, s.Value)
		assert.Equal(t, "mexc", s.Value.Name)
		assert.Equal(t, "/srv/etc/market.yaml", s.File, "File is rewritten to the resolved path")
	})

	t.Run("loader failure surfaces", func(t *testing.T) {
		s := &confkit.Section[sectionConf]{File: "market.yaml"}
		err := s.Hydrate("/srv/etc", func(string) (*sectionConf, error) {
			return nil, fmt.Errorf("bad yaml")
		})
		assert.Error(t, err)
	})
}

func TestProjectPath(t *testing.T) {
	p := confkit.MustProjectPath("etc/screener.yaml")
	assert.True(t, filepath.IsAbs(p))
	assert.Equal(t, "screener.yaml", filepath.Base(p))

	root, err := confkit.ProjectRoot()
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, statErr, "root is the directory carrying go.mod")
}
