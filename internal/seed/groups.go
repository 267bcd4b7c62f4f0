package seed

import (
	"fmt"
	"os"

	"yatube/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupFixture describes one group to seed. It doubles as the YAML shape
// for fixture files loaded with LoadGroupFixtures.
type GroupFixture struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// BuiltInGroups defines the permanent default groups.
var BuiltInGroups = []GroupFixture{
	{Title: "Poetry", Slug: "poetry", Description: "Verse in all its forms."},
	{Title: "Prose", Slug: "prose", Description: "Novels, novellas, and long-form fiction."},
	{Title: "Short Stories", Slug: "short-stories", Description: "Fiction you can finish in one sitting."},
	{Title: "Essays", Slug: "essays", Description: "Non-fiction, opinion, and reflection."},
	{Title: "Criticism", Slug: "criticism", Description: "Reviews and literary analysis."},
	{Title: "Drama", Slug: "drama", Description: "Plays, scripts, and stagecraft."},
	{Title: "Translations", Slug: "translations", Description: "Works carried across languages."},
	{Title: "Letters", Slug: "letters", Description: "Correspondence, diaries, and fragments."},
}

// Groups seeds the permanent built-in groups. Existing groups are updated
// in place so re-running the seeder refreshes titles and descriptions.
func Groups(db *gorm.DB) error {
	return ApplyGroups(db, BuiltInGroups)
}

// ApplyGroups upserts the given fixtures keyed by slug.
func ApplyGroups(db *gorm.DB, fixtures []GroupFixture) error {
	for _, item := range fixtures {
		if item.Slug == "" || item.Title == "" {
			return fmt.Errorf("group fixture needs both slug and title: %+v", item)
		}
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error
		if err != nil {
			return fmt.Errorf("upsert group %q: %w", item.Slug, err)
		}
	}
	return nil
}

// LoadGroupFixtures reads group fixtures from a YAML file of the form:
//
//	groups:
//	  - title: Poetry
//	    slug: poetry
//	    description: Verse in all its forms.
func LoadGroupFixtures(path string) ([]GroupFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}

	var doc struct {
		Groups []GroupFixture `yaml:"groups"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture file: %w", err)
	}
	if len(doc.Groups) == 0 {
		return nil, fmt.Errorf("fixture file %s contains no groups", path)
	}
	return doc.Groups, nil
}
