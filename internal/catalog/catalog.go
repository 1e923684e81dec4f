// Package catalog holds the static portfolio tables.
//
// A Catalog is decoded once at startup, from the embedded catalog.toml or
// from a file given in the configuration, and is read-only afterwards, so it
// is safe to share between request goroutines without locking.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"portfolio-backend/internal/generator"
	"portfolio-backend/internal/models"
)

//go:embed catalog.toml
var embedded []byte

type document struct {
	Profile  models.Profile            `toml:"profile"`
	Projects []models.Project          `toml:"projects"`
	Skills   map[string][]models.Skill `toml:"skills"`
	Blog     []models.BlogPost         `toml:"blog"`
	Fortunes []string                  `toml:"fortunes"`
}

// Catalog is the immutable set of portfolio tables
type Catalog struct {
	profile  models.Profile
	projects []models.Project
	skills   map[string][]models.Skill
	blog     []models.BlogPost
	fortunes []string
}

// Default decodes the embedded catalog
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog file; an empty path means the embedded one
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML catalog
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if strings.TrimSpace(doc.Profile.Name) == "" {
		return nil, errors.New("catalog: profile name is required")
	}

	seen := make(map[int]bool, len(doc.Projects))
	for _, p := range doc.Projects {
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog: duplicate project id %d", p.ID)
		}
		seen[p.ID] = true
	}

	// Category lookups are case-insensitive, so keys are stored lowercased
	skills := make(map[string][]models.Skill, len(doc.Skills))
	for category, list := range doc.Skills {
		key := strings.ToLower(strings.TrimSpace(category))
		skills[key] = append(skills[key], list...)
	}

	return &Catalog{
		profile:  doc.Profile,
		projects: doc.Projects,
		skills:   skills,
		blog:     doc.Blog,
		fortunes: doc.Fortunes,
	}, nil
}

// Profile returns the portfolio owner card
func (c *Catalog) Profile() models.Profile {
	return c.profile
}

// Projects returns every project in catalog order
func (c *Catalog) Projects() []models.Project {
	return append([]models.Project(nil), c.projects...)
}

// Project finds a project by id
func (c *Catalog) Project(id int) (models.Project, bool) {
	for _, p := range c.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Skills returns every category with its skills
func (c *Catalog) Skills() map[string][]models.Skill {
	out := make(map[string][]models.Skill, len(c.skills))
	for k, v := range c.skills {
		out[k] = append([]models.Skill(nil), v...)
	}
	return out
}

// Categories returns the skill category names, sorted
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.skills))
	for k := range c.skills {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SkillsByCategory matches category case-insensitively
func (c *Catalog) SkillsByCategory(category string) ([]models.Skill, bool) {
	list, ok := c.skills[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return nil, false
	}
	return append([]models.Skill(nil), list...), true
}

// Blog returns the blog teasers in catalog order
func (c *Catalog) Blog() []models.BlogPost {
	return append([]models.BlogPost(nil), c.blog...)
}

// Fortunes returns the quotes served by the fortune command
func (c *Catalog) Fortunes() []string {
	return append([]string(nil), c.fortunes...)
}

// Pipeline describes the simulated ETL pipeline behind /stream/pipeline
func (c *Catalog) Pipeline() models.PipelineInfo {
	return models.PipelineInfo{
		Name:        "portfolio-etl",
		Description: "Synthetic batch pipeline moving event data from sources to the warehouse.",
		Schedule:    "continuous",
		Stages:      append([]models.Stage(nil), generator.DefaultStages...),
		Stream:      "/stream/pipeline",
	}
}
