// Package feedback turns missing/matched skill partitions into categorized,
// actionable feedback text driven by a configurable bucket table.
package feedback

import (
	"fmt"
	"strings"
)

// Bucket groups related skills under one feedback clause. Template must
// contain a single %s placeholder for the comma-joined skill list; Limit
// caps how many skills the clause names.
type Bucket struct {
	Name     string   `json:"name"`
	Skills   []string `json:"skills"`
	Limit    int      `json:"limit"`
	Template string   `json:"template"`
}

// Config is the full feedback table: topical buckets for missing skills, a
// catch-all clause for unbucketed ones, a clause for matched skills, and the
// message used when there is nothing to report.
type Config struct {
	Buckets         []Bucket `json:"buckets"`
	OtherTemplate   string   `json:"other_template"`
	OtherLimit      int      `json:"other_limit"`
	MatchedTemplate string   `json:"matched_template"`
	MatchedLimit    int      `json:"matched_limit"`
	EmptyMessage    string   `json:"empty_message"`
	Separator       string   `json:"separator"`
}

// DefaultConfig returns the built-in feedback table.
func DefaultConfig() Config {
	return Config{
		Buckets: []Bucket{
			{
				Name:     "programming",
				Skills:   []string{"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust"},
				Limit:    3,
				Template: "📚 Programming: Consider learning %s",
			},
			{
				Name:     "cloud",
				Skills:   []string{"aws", "azure", "gcp", "docker", "kubernetes"},
				Limit:    2,
				Template: "☁️ Cloud: Add projects showcasing %s deployment",
			},
			{
				Name:     "data",
				Skills:   []string{"machine learning", "deep learning", "tensorflow", "pytorch", "pandas"},
				Limit:    2,
				Template: "🤖 Data Science: Build portfolio projects with %s",
			},
		},
		OtherTemplate:   "🛠️ Technical: Gain experience with %s",
		OtherLimit:      3,
		MatchedTemplate: "✅ Strong match in: %s",
		MatchedLimit:    5,
		EmptyMessage:    "🎉 Excellent skill alignment! No major gaps detected.",
		Separator:       " | ",
	}
}

// Validate checks the table for defects that would produce broken clauses.
func (c Config) Validate() error {
	for _, b := range c.Buckets {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("feedback bucket with empty name")
		}
		if b.Limit <= 0 {
			return fmt.Errorf("feedback bucket %q has non-positive limit", b.Name)
		}
		if strings.Count(b.Template, "%s") != 1 {
			return fmt.Errorf("feedback bucket %q template needs exactly one %%s", b.Name)
		}
	}
	if c.OtherLimit <= 0 {
		return fmt.Errorf("feedback other_limit must be positive")
	}
	if strings.Count(c.OtherTemplate, "%s") != 1 {
		return fmt.Errorf("feedback other_template needs exactly one %%s")
	}
	if c.MatchedLimit <= 0 {
		return fmt.Errorf("feedback matched_limit must be positive")
	}
	if strings.Count(c.MatchedTemplate, "%s") != 1 {
		return fmt.Errorf("feedback matched_template needs exactly one %%s")
	}
	if c.EmptyMessage == "" {
		return fmt.Errorf("feedback empty_message must not be empty")
	}
	return nil
}

// Generator renders feedback from a Config. It is immutable and safe for
// concurrent use.
type Generator struct {
	cfg        Config
	membership []map[string]struct{}
}

// NewGenerator validates the table and builds a Generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	membership := make([]map[string]struct{}, len(cfg.Buckets))
	for i, b := range cfg.Buckets {
		set := make(map[string]struct{}, len(b.Skills))
		for _, s := range b.Skills {
			set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
		}
		membership[i] = set
	}
	return &Generator{cfg: cfg, membership: membership}, nil
}

// Generate produces one feedback string for the given skill partitions.
// Missing skills are reported bucket by bucket in table order, leftovers go
// to the catch-all clause, matched skills get a closing clause, and an empty
// partition pair yields the empty message. Skill casing is preserved.
func (g *Generator) Generate(missingSkills, matchedSkills []string) string {
	var parts []string

	if len(missingSkills) > 0 {
		bucketed := make([]bool, len(missingSkills))
		for i, bucket := range g.cfg.Buckets {
			var hits []string
			for j, skill := range missingSkills {
				if _, ok := g.membership[i][strings.ToLower(skill)]; ok {
					hits = append(hits, skill)
					bucketed[j] = true
				}
			}
			if len(hits) > 0 {
				parts = append(parts, fmt.Sprintf(bucket.Template, joinCapped(hits, bucket.Limit)))
			}
		}

		var other []string
		for j, skill := range missingSkills {
			if !bucketed[j] {
				other = append(other, skill)
			}
		}
		if len(other) > 0 {
			parts = append(parts, fmt.Sprintf(g.cfg.OtherTemplate, joinCapped(other, g.cfg.OtherLimit)))
		}
	}

	if len(matchedSkills) > 0 {
		parts = append(parts, fmt.Sprintf(g.cfg.MatchedTemplate, joinCapped(matchedSkills, g.cfg.MatchedLimit)))
	}

	if len(parts) == 0 {
		return g.cfg.EmptyMessage
	}
	return strings.Join(parts, g.cfg.Separator)
}

func joinCapped(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
