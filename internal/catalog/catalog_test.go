package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Pierre Lafage", c.Profile().Name)
	assert.Len(t, c.Projects(), 4)
	assert.NotEmpty(t, c.Blog())
	assert.NotEmpty(t, c.Fortunes())
	assert.Equal(t, []string{"data", "devops", "ml", "viz"}, c.Categories())
}

func TestProjectLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, ok := c.Project(3)
	require.True(t, ok)
	assert.Equal(t, "NLP Pipeline", p.Title)

	_, ok = c.Project(9999)
	assert.False(t, ok)
}

func TestSkillsByCategoryIgnoresCase(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	lower, ok := c.SkillsByCategory("ml")
	require.True(t, ok)
	upper, ok := c.SkillsByCategory("ML")
	require.True(t, ok)
	padded, ok := c.SkillsByCategory("  Ml ")
	require.True(t, ok)

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, padded)

	_, ok = c.SkillsByCategory("cooking")
	assert.False(t, ok)
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	projects := c.Projects()
	projects[0].Title = "changed"
	assert.NotEqual(t, "changed", c.Projects()[0].Title)

	skills := c.Skills()
	skills["ml"][0].Name = "changed"
	again, _ := c.SkillsByCategory("ml")
	assert.NotEqual(t, "changed", again[0].Name)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing profile name", doc: "[profile]\ntitle = \"x\"\n"},
		{name: "duplicate project id", doc: "[profile]\nname = \"a\"\n[[projects]]\nid = 1\n[[projects]]\nid = 1\n"},
		{name: "unknown field", doc: "[profile]\nname = \"a\"\nfavourite_colour = \"blue\"\n"},
		{name: "not toml", doc: "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFileMergesCategoryCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	doc := `
[profile]
name = "Test User"

[skills]
Backend = [{ name = "Go", level = 90 }]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test User", c.Profile().Name)

	skills, ok := c.SkillsByCategory("BACKEND")
	require.True(t, ok)
	assert.Equal(t, "Go", skills[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestPipelineInfoListsStages(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	info := c.Pipeline()
	require.NotEmpty(t, info.Stages)
	assert.Equal(t, "extract", info.Stages[0].ID)
	assert.Equal(t, "/stream/pipeline", info.Stream)
}
