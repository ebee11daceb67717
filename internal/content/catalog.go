package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/mumvest/mumvest/internal/markdown"
	"github.com/shopspring/decimal"
)

type Moment struct {
	ID                     string          `json:"id"`
	Day                    int             `json:"day"`
	Category               string          `json:"category"`
	Title                  string          `json:"title"`
	Summary                string          `json:"summary"`
	HTMLBody               string          `json:"body"`
	PotentialMonthlySaving decimal.Decimal `json:"potentialMonthlySaving"`
	ReadTimeSeconds        int             `json:"readTimeSeconds"`
	IsPick                 bool            `json:"isPick"`
}

type Swap struct {
	ID                     string          `json:"id"`
	Category               string          `json:"category"`
	Title                  string          `json:"title"`
	HTMLBody               string          `json:"description"`
	PotentialMonthlySaving decimal.Decimal `json:"potentialMonthlySaving"`
	IsPick                 bool            `json:"isPick"`
}

type Challenge struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	HTMLBody        string          `json:"description"`
	Difficulty      string          `json:"difficulty"`
	DurationHours   int             `json:"durationHours"`
	CheckInLabels   []string        `json:"checkInLabels"`
	BadgeReward     string          `json:"badgeReward"`
	EstimatedSaving decimal.Decimal `json:"estimatedSaving"`
	IsPremium       bool            `json:"isPremium"`
}

func (c Challenge) CheckInCount() int {
	return len(c.CheckInLabels)
}

type Lesson struct {
	ID              string `json:"id"`
	Level           int    `json:"level"`
	Order           int    `json:"order"`
	Title           string `json:"title"`
	HTMLBody        string `json:"body"`
	ReadTimeMinutes int    `json:"readTimeMinutes"`
	IsPremium       bool   `json:"isPremium"`
	XPReward        int    `json:"xpReward"`
}

// Catalog is the read-only content shipped with the app.
type Catalog struct {
	Moments    []Moment
	Swaps      []Swap
	Challenges []Challenge
	Lessons    []Lesson
}

// Load reads moments/, swaps/, challenges/ and lessons/ markdown files from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	p := markdown.NewParser()
	c := &Catalog{}

	err := eachDoc(fsys, p, "moments", func(html string, meta map[string]any) error {
		c.Moments = append(c.Moments, Moment{
			ID:                     metaString(meta, "id"),
			Day:                    metaInt(meta, "day"),
			Category:               metaString(meta, "category"),
			Title:                  metaString(meta, "title"),
			Summary:                metaString(meta, "summary"),
			HTMLBody:               html,
			PotentialMonthlySaving: metaDecimal(meta, "potential_monthly_saving"),
			ReadTimeSeconds:        metaInt(meta, "read_time_seconds"),
			IsPick:                 metaBool(meta, "pick"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachDoc(fsys, p, "swaps", func(html string, meta map[string]any) error {
		c.Swaps = append(c.Swaps, Swap{
			ID:                     metaString(meta, "id"),
			Category:               metaString(meta, "category"),
			Title:                  metaString(meta, "title"),
			HTMLBody:               html,
			PotentialMonthlySaving: metaDecimal(meta, "potential_monthly_saving"),
			IsPick:                 metaBool(meta, "pick"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachDoc(fsys, p, "challenges", func(html string, meta map[string]any) error {
		c.Challenges = append(c.Challenges, Challenge{
			ID:              metaString(meta, "id"),
			Name:            metaString(meta, "name"),
			HTMLBody:        html,
			Difficulty:      metaString(meta, "difficulty"),
			DurationHours:   metaInt(meta, "duration_hours"),
			CheckInLabels:   metaStrings(meta, "check_in_labels"),
			BadgeReward:     metaString(meta, "badge_reward"),
			EstimatedSaving: metaDecimal(meta, "estimated_saving"),
			IsPremium:       metaBool(meta, "premium"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachDoc(fsys, p, "lessons", func(html string, meta map[string]any) error {
		c.Lessons = append(c.Lessons, Lesson{
			ID:              metaString(meta, "id"),
			Level:           metaInt(meta, "level"),
			Order:           metaInt(meta, "order"),
			Title:           metaString(meta, "title"),
			HTMLBody:        html,
			ReadTimeMinutes: metaInt(meta, "read_time_minutes"),
			IsPremium:       metaBool(meta, "premium"),
			XPReward:        metaInt(meta, "xp_reward"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(c.Moments, func(i, j int) bool { return c.Moments[i].Day < c.Moments[j].Day })
	sort.SliceStable(c.Lessons, func(i, j int) bool {
		if c.Lessons[i].Level != c.Lessons[j].Level {
			return c.Lessons[i].Level < c.Lessons[j].Level
		}
		return c.Lessons[i].Order < c.Lessons[j].Order
	})

	return c, c.validate()
}

func (c *Catalog) validate() error {
	if len(c.Moments) == 0 {
		return fmt.Errorf("content: no moments in catalog")
	}

	seen := map[string]bool{}
	check := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("content: %s without id", kind)
		}
		key := kind + "/" + id
		if seen[key] {
			return fmt.Errorf("content: duplicate %s %q", kind, id)
		}
		seen[key] = true
		return nil
	}

	for _, m := range c.Moments {
		if err := check("moment", m.ID); err != nil {
			return err
		}
	}
	for _, s := range c.Swaps {
		if err := check("swap", s.ID); err != nil {
			return err
		}
	}
	for _, ch := range c.Challenges {
		if err := check("challenge", ch.ID); err != nil {
			return err
		}
		if ch.CheckInCount() == 0 {
			return fmt.Errorf("content: challenge %q has no check-ins", ch.ID)
		}
	}
	for _, l := range c.Lessons {
		if err := check("lesson", l.ID); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) Moment(id string) (Moment, bool) {
	for _, m := range c.Moments {
		if m.ID == id {
			return m, true
		}
	}
	return Moment{}, false
}

func (c *Catalog) Swap(id string) (Swap, bool) {
	for _, s := range c.Swaps {
		if s.ID == id {
			return s, true
		}
	}
	return Swap{}, false
}

func (c *Catalog) Challenge(id string) (Challenge, bool) {
	for _, ch := range c.Challenges {
		if ch.ID == id {
			return ch, true
		}
	}
	return Challenge{}, false
}

func (c *Catalog) Lesson(id string) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

func (c *Catalog) LessonsInLevel(level int) []Lesson {
	var out []Lesson
	for _, l := range c.Lessons {
		if l.Level == level {
			out = append(out, l)
		}
	}
	return out
}

func eachDoc(fsys fs.FS, p *markdown.Parser, dir string, fn func(html string, meta map[string]any) error) error {
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return err
	}

	for _, file := range files {
		source, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", file, err)
		}

		html, meta, err := p.ParseWithFrontmatter(source)
		if err != nil {
			return fmt.Errorf("content: parse %s: %w", file, err)
		}

		if _, ok := meta["id"]; !ok {
			meta["id"] = strings.TrimSuffix(path.Base(file), ".md")
		}

		if err := fn(string(html), meta); err != nil {
			return err
		}
	}

	return nil
}

func metaString(meta map[string]any, key string) string {
	s, _ := meta[key].(string)
	return s
}

func metaInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func metaBool(meta map[string]any, key string) bool {
	b, _ := meta[key].(bool)
	return b
}

func metaDecimal(meta map[string]any, key string) decimal.Decimal {
	switch v := meta[key].(type) {
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

func metaStrings(meta map[string]any, key string) []string {
	items, ok := meta[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		s, ok := item.(string)
		if ok {
			out = append(out, s)
		}
	}
	return out
}
