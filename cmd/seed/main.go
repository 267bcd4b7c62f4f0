// Command seed runs the database seeder for Yatube.
package main

import (
	"flag"
	"log"

	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	groupsFile := flag.String("groups-file", "", "YAML file with group fixtures (replaces built-ins)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d posts, %d comments, clean=%v\n", *numUsers, *numPosts, *numComments, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *groupsFile != "" {
		fixtures, err := seed.LoadGroupFixtures(*groupsFile)
		if err != nil {
			log.Fatalf("❌ Group fixtures failed to load: %v", err)
		}
		if err := seed.ApplyGroups(db, fixtures); err != nil {
			log.Fatalf("❌ Group fixture seeding failed: %v", err)
		}
		log.Printf("✓ %d groups applied from %s", len(fixtures), *groupsFile)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		NumComments: *numComments,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
