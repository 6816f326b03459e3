// Command main runs the database seeder for MedConnect.
package main

import (
	"flag"
	"log"

	"medconnect/internal/config"
	"medconnect/internal/database"
	"medconnect/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 50, "Number of posts to create")
	numJobs := flag.Int("jobs", 10, "Number of job postings to create")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, %d jobs\n", *numUsers, *numPosts, *numJobs)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB, seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
		NumJobs:  *numJobs,
	})
	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
