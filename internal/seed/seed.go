package seed

import (
	"fmt"
	"log"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// Seed populates the database with demo data: users, grouped posts,
// comments, and a follow mesh so the follow feed has content.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	var groups []models.Group
	if err := db.Find(&groups).Error; err != nil {
		return fmt.Errorf("failed to load groups: %w", err)
	}
	// fall back to the built-in set when no fixtures were applied
	if len(groups) == 0 {
		if err := Groups(db); err != nil {
			return fmt.Errorf("failed to seed built-in groups: %w", err)
		}
		if err := db.Find(&groups).Error; err != nil {
			return fmt.Errorf("failed to load groups: %w", err)
		}
	}
	log.Printf("✓ %d groups available", len(groups))

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created (password %q)", len(users), DemoPassword)

	posts, err := createPosts(f, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(f, users, posts, opts.NumComments)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	follows, err := createFollowMesh(f, users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// clearData wipes user-generated content. Follows, comments, and posts go
// before users so the deletes do not depend on cascade support.
func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	for _, table := range []string{"follows", "comments", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a couple of fixed accounts for manual testing
	if count >= 2 {
		for _, name := range []string{"leo", "test"} {
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
			})
			if err != nil {
				return nil, err
			}
			users = append(users, user)
		}
	}

	for len(users) < count {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(f *Factory, users []*models.User, groups []models.Group, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[f.r.Intn(len(users))]

		// roughly a third of posts stay ungrouped
		var group *models.Group
		if len(groups) > 0 && f.r.Intn(3) != 0 {
			group = &groups[f.r.Intn(len(groups))]
		}
		posts = append(posts, f.BuildPost(author, group))
	}

	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(f *Factory, users []*models.User, posts []*models.Post, count int) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}

	created := 0
	for i := 0; i < count; i++ {
		author := users[f.r.Intn(len(users))]
		post := posts[f.r.Intn(len(posts))]
		if _, err := f.CreateComment(author, post); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// createFollowMesh makes every user follow a handful of random authors so
// seeded accounts land on a non-empty follow feed.
func createFollowMesh(f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, user := range users {
		want := 1 + f.r.Intn(5)
		for i := 0; i < want; i++ {
			author := users[f.r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			if err := f.Follow(user, author); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
