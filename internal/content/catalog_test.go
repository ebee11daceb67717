package content

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/mumvest/mumvest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func embedded(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(mumvest.ContentFS, "content")
	require.NoError(t, err)
	return sub
}

func TestLoad_Embedded(t *testing.T) {
	t.Parallel()

	c, err := Load(embedded(t))
	require.NoError(t, err)

	require.Len(t, c.Moments, 30)
	require.Equal(t, "moment-01", c.Moments[0].ID)
	require.Equal(t, 30, c.Moments[29].Day)
	require.NotEmpty(t, c.Swaps)
	require.NotEmpty(t, c.Challenges)
	require.NotEmpty(t, c.Lessons)

	m, ok := c.Moment("moment-05")
	require.True(t, ok)
	require.Equal(t, "dining", m.Category)
	require.True(t, m.IsPick)
	require.True(t, m.PotentialMonthlySaving.Equal(decimal.NewFromInt(35)))
	require.Contains(t, m.HTMLBody, "<p>")

	ch, ok := c.Challenge("no-spend-weekend")
	require.True(t, ok)
	require.Equal(t, 4, ch.CheckInCount())
	require.False(t, ch.IsPremium)

	level1 := c.LessonsInLevel(1)
	require.Len(t, level1, 5)
	for i, l := range level1 {
		require.Equal(t, i+1, l.Order)
		require.Equal(t, 50, l.XPReward)
	}

	_, ok = c.Lesson("nope")
	require.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files fstest.MapFS
		want  string
	}{
		{
			name:  "no moments",
			files: fstest.MapFS{},
			want:  "no moments",
		},
		{
			name: "duplicate ids",
			files: fstest.MapFS{
				"moments/a.md": {Data: []byte("---\nid: same\nday: 1\n---\nA")},
				"moments/b.md": {Data: []byte("---\nid: same\nday: 2\n---\nB")},
			},
			want: "duplicate moment",
		},
		{
			name: "challenge without check-ins",
			files: fstest.MapFS{
				"moments/a.md":    {Data: []byte("---\nday: 1\n---\nA")},
				"challenges/c.md": {Data: []byte("---\nid: c\nname: C\n---\nC")},
			},
			want: "no check-ins",
		},
		{
			name: "bad frontmatter",
			files: fstest.MapFS{
				"moments/a.md": {Data: []byte("---\nid: [oops\n---\nA")},
			},
			want: "parse moments/a.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(tt.files)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_IDFromFilename(t *testing.T) {
	t.Parallel()

	c, err := Load(fstest.MapFS{
		"moments/first-tip.md": {Data: []byte("---\nday: 1\nsaving: nope\npotential_monthly_saving: \"12.50\"\n---\nBody")},
	})
	require.NoError(t, err)
	require.Equal(t, "first-tip", c.Moments[0].ID)
	require.True(t, c.Moments[0].PotentialMonthlySaving.Equal(decimal.RequireFromString("12.5")))
}
