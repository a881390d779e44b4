package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestSaveNewSanitizesName(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveNew(&Profile{Name: "A/B"})
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.Equal(t, "AB.json", base)
	assert.NotContains(t, base, "/")
	assert.NotContains(t, base, string(os.PathSeparator))
}

func TestSaveNewSuffixesOnCollision(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SaveNew(&Profile{Name: "My Setup"})
	require.NoError(t, err)
	second, err := s.SaveNew(&Profile{Name: "My_Setup"})
	require.NoError(t, err)

	assert.Equal(t, "My_Setup.json", filepath.Base(first))
	assert.Equal(t, "My_Setup_1.json", filepath.Base(second))
	assert.NotEqual(t, first, second)
}

func TestSaveNewFallsBackWhenNameSanitizesToNothing(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveNew(&Profile{Name: "!!!"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "config_"))
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.Dir(), "quick.json")

	require.NoError(t, s.Save(path, &Profile{Name: "v1"}))
	require.NoError(t, s.Save(path, &Profile{Name: "v2"}))

	p, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", p.Name)
}

func TestSaveStampsSavedAt(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.Dir(), "stamped.json")

	require.NoError(t, s.Save(path, &Profile{Name: "stamped"}))

	p, err := s.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, p.SavedAt)
}

func TestLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	original := &Profile{
		Name:        "fishing",
		Description: "barbarian village",
		StartDelay:  5,
		LoopCount:   12,
		ClickPoints: []ClickPoint{
			{X: 1, Y: 2, Delay: 0.5, Randomize: true, RandomRange: 3, Enabled: true},
			{X: 9, Y: 8, Delay: 8, Enabled: false},
		},
	}

	path, err := s.SaveNew(original)
	require.NoError(t, err)

	loaded, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Description, loaded.Description)
	assert.Equal(t, original.StartDelay, loaded.StartDelay)
	assert.Equal(t, original.LoopCount, loaded.LoopCount)
	assert.Equal(t, original.ClickPoints, loaded.ClickPoints)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(filepath.Join(s.Dir(), "nope.json"))
	assert.Error(t, err)
}

func TestListSkipsMalformedFiles(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveNew(&Profile{Name: "good one", Description: "works"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("ignore me"), 0o644))

	summaries, err := s.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "good one", summaries[0].Name)
	assert.Equal(t, "works", summaries[0].Description)
}

func TestListFallsBackToFilenameForUnnamedProfiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "anon.json"), []byte(`{"click_points": [{"x":1,"y":2}]}`), 0o644))

	summaries, err := s.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "anon.json", summaries[0].Name)
	assert.Equal(t, 1, summaries[0].Points)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	path, err := s.SaveNew(&Profile{Name: "doomed"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(path))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	assert.Error(t, s.Delete(path))
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bank Run", "Bank_Run"},
		{"a/b\\c", "abc"},
		{"under_score-dash", "under_score-dash"},
		{"  padded  ", "padded"},
		{"../../etc/passwd", "etcpasswd"},
		{"%^&*", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeName(tc.in), "input %q", tc.in)
	}
}

func TestFormatSavedAt(t *testing.T) {
	assert.Equal(t, "Unknown", formatSavedAt(""))
	assert.Equal(t, "2024-03-01 09:30", formatSavedAt("2024-03-01T09:30:15Z"))
	// Zone-less stamps from older builds still format.
	assert.Equal(t, "2024-03-01 09:30", formatSavedAt("2024-03-01T09:30:15.123456"))
	// Unparsable strings fall back to the raw value.
	assert.Equal(t, "yesterday-ish", formatSavedAt("yesterday-ish"))
}
