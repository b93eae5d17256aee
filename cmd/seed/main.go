package main

import (
	"fmt"
	"log"
	"time"

	"photoshare/internal/database"
	"photoshare/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("photoshare.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first so foreign keys stay happy)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM transformed_images")
	db.Exec("DELETE FROM ratings")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM image_tags")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM images")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@photoshare.dev",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@photoshare.dev / admin123")

	modHash, _ := bcrypt.GenerateFromPassword([]byte("moderator123"), bcrypt.DefaultCost)
	moderator := domain.User{
		Email:        "moderator@photoshare.dev",
		PasswordHash: string(modHash),
		Role:         domain.RoleModerator,
		Name:         "Moderator",
	}
	db.Create(&moderator)
	log.Println("Moderator created: moderator@photoshare.dev / moderator123")

	users := []domain.User{}
	userEmails := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, email := range userEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			Name:         fmt.Sprintf("User %d", i+1),
		}
		db.Create(&u)
		users = append(users, u)
	}
	log.Printf("Created %d regular users (password: user123)", len(users))

	// ================== IMAGES ==================
	log.Println("Creating images...")

	sunset := domain.Tag{Name: "sunset"}
	nature := domain.Tag{Name: "nature"}
	city := domain.Tag{Name: "city"}
	db.Create(&sunset)
	db.Create(&nature)
	db.Create(&city)

	imgs := []domain.Image{
		{
			UserID:      users[0].ID,
			URL:         "https://res.cloudinary.com/demo/image/upload/PhotoShare/alice_1.jpg",
			Description: "Sunset over the bay",
			Tags:        []domain.Tag{sunset, nature},
		},
		{
			UserID:      users[0].ID,
			URL:         "https://res.cloudinary.com/demo/image/upload/PhotoShare/alice_2.jpg",
			Description: "Morning fog in the valley",
			Tags:        []domain.Tag{nature},
		},
		{
			UserID:      users[1].ID,
			URL:         "https://res.cloudinary.com/demo/image/upload/PhotoShare/bob_1.jpg",
			Description: "Downtown at night",
			Tags:        []domain.Tag{city},
		},
	}
	for i := range imgs {
		db.Create(&imgs[i])
	}
	log.Printf("Created %d images", len(imgs))

	// ================== RATINGS & COMMENTS ==================
	log.Println("Creating ratings and comments...")

	db.Create(&domain.Rating{UserID: users[1].ID, ImageID: imgs[0].ID, Score: 5})
	db.Create(&domain.Rating{UserID: users[2].ID, ImageID: imgs[0].ID, Score: 4})
	db.Create(&domain.Rating{UserID: users[0].ID, ImageID: imgs[2].ID, Score: 3})

	db.Create(&domain.Comment{UserID: users[1].ID, ImageID: imgs[0].ID, Text: "Gorgeous colors!"})
	db.Create(&domain.Comment{UserID: users[2].ID, ImageID: imgs[2].ID, Text: "Which lens did you use?"})

	// ================== TRANSFORMED ==================
	db.Create(&domain.TransformedImage{
		ImageID:   imgs[0].ID,
		URL:       "https://res.cloudinary.com/demo/image/upload/PhotoShare(transformed)/alice_1.jpg",
		Kind:      domain.TransformCrop,
		Params:    "c_fill,w_400,h_400",
		CreatedAt: time.Now(),
	})

	log.Println("Seed complete.")
}
