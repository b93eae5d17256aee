package repository

import (
	"context"
	"testing"

	"photoshare/internal/database"
	"photoshare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	// in-memory sqlite is per-connection; pin the pool to one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db), "Failed to migrate test database")
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	users := NewUserRepository(db)
	u := &domain.User{Email: email, PasswordHash: "x", Name: "Test", Role: domain.RoleUser}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestImageRepository_CreateReusesExistingTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImageRepository(db)
	user := createTestUser(t, db, "alice@example.com")
	ctx := context.Background()

	first := &domain.Image{
		UserID: user.ID,
		URL:    "https://cdn.example.com/1.jpg",
		Tags:   []domain.Tag{{Name: "Sunset"}, {Name: "nature"}},
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.Image{
		UserID: user.ID,
		URL:    "https://cdn.example.com/2.jpg",
		Tags:   []domain.Tag{{Name: "sunset"}},
	}
	require.NoError(t, repo.Create(ctx, second))

	// tag names are normalized to lowercase and shared between images
	var count int64
	db.Model(&domain.Tag{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestImageRepository_SearchMatchesDescriptionAndTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImageRepository(db)
	user := createTestUser(t, db, "alice@example.com")
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Image{
		UserID:      user.ID,
		URL:         "https://cdn.example.com/1.jpg",
		Description: "Golden Sunset over the bay",
	}))
	require.NoError(t, repo.Create(ctx, &domain.Image{
		UserID: user.ID,
		URL:    "https://cdn.example.com/2.jpg",
		Tags:   []domain.Tag{{Name: "sunset"}},
	}))
	require.NoError(t, repo.Create(ctx, &domain.Image{
		UserID:      user.ID,
		URL:         "https://cdn.example.com/3.jpg",
		Description: "Downtown at night",
	}))

	// case-insensitive, both description and tag hits
	found, err := repo.Search(ctx, "SUNSET")
	assert.NoError(t, err)
	assert.Len(t, found, 2)

	// no match is an empty slice, not an error
	found, err = repo.Search(ctx, "mountain")
	assert.NoError(t, err)
	assert.Empty(t, found)
}

func TestImageRepository_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImageRepository(db)
	user := createTestUser(t, db, "alice@example.com")
	ctx := context.Background()

	img := &domain.Image{
		UserID: user.ID,
		URL:    "https://cdn.example.com/1.jpg",
		Tags:   []domain.Tag{{Name: "sunset"}},
	}
	require.NoError(t, repo.Create(ctx, img))

	require.NoError(t, repo.CreateTransformed(ctx, &domain.TransformedImage{
		ImageID: img.ID,
		URL:     "https://cdn.example.com/1t.jpg",
		Kind:    domain.TransformCrop,
		Params:  "c_fill,w_100,h_100",
	}))
	require.NoError(t, db.Create(&domain.Rating{UserID: user.ID, ImageID: img.ID, Score: 5}).Error)
	require.NoError(t, db.Create(&domain.Comment{UserID: user.ID, ImageID: img.ID, Text: "nice"}).Error)

	require.NoError(t, repo.DeleteCascade(ctx, img.ID))

	var transformed, ratings, comments, links int64
	db.Model(&domain.TransformedImage{}).Where("image_id = ?", img.ID).Count(&transformed)
	db.Model(&domain.Rating{}).Where("image_id = ?", img.ID).Count(&ratings)
	db.Model(&domain.Comment{}).Where("image_id = ?", img.ID).Count(&comments)
	db.Table("image_tags").Where("image_id = ?", img.ID).Count(&links)

	assert.Zero(t, transformed)
	assert.Zero(t, ratings)
	assert.Zero(t, comments)
	assert.Zero(t, links)

	_, err := repo.GetByID(ctx, img.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// deleting again reports not found instead of silently succeeding
	assert.ErrorIs(t, repo.DeleteCascade(ctx, img.ID), gorm.ErrRecordNotFound)
}

func TestImageRepository_LatestTransformed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImageRepository(db)
	user := createTestUser(t, db, "alice@example.com")
	ctx := context.Background()

	img := &domain.Image{UserID: user.ID, URL: "https://cdn.example.com/1.jpg"}
	require.NoError(t, repo.Create(ctx, img))

	_, err := repo.LatestTransformed(ctx, img.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.CreateTransformed(ctx, &domain.TransformedImage{
		ImageID: img.ID, URL: "https://cdn.example.com/v1.jpg", Kind: domain.TransformCrop, Params: "c_fill,w_100,h_100",
	}))
	require.NoError(t, repo.CreateTransformed(ctx, &domain.TransformedImage{
		ImageID: img.ID, URL: "https://cdn.example.com/v2.jpg", Kind: domain.TransformEffect, Params: "e_art:frost",
	}))

	latest, err := repo.LatestTransformed(ctx, img.ID)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/v2.jpg", latest.URL)

	count, err := repo.CountTransformed(ctx, img.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestImageRepository_AverageRatings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewImageRepository(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	ctx := context.Background()

	rated := &domain.Image{UserID: alice.ID, URL: "https://cdn.example.com/1.jpg"}
	unrated := &domain.Image{UserID: alice.ID, URL: "https://cdn.example.com/2.jpg"}
	require.NoError(t, repo.Create(ctx, rated))
	require.NoError(t, repo.Create(ctx, unrated))

	require.NoError(t, db.Create(&domain.Rating{UserID: alice.ID, ImageID: rated.ID, Score: 5}).Error)
	require.NoError(t, db.Create(&domain.Rating{UserID: bob.ID, ImageID: rated.ID, Score: 2}).Error)

	averages, err := repo.AverageRatings(ctx, []int64{rated.ID, unrated.ID})
	assert.NoError(t, err)
	assert.InDelta(t, 3.5, averages[rated.ID], 0.001)

	// unrated images simply have no entry
	_, present := averages[unrated.ID]
	assert.False(t, present)
}

func TestRatingRepository_UpsertReplacesScore(t *testing.T) {
	db := setupTestDB(t)
	images := NewImageRepository(db)
	ratings := NewRatingRepository(db)
	user := createTestUser(t, db, "alice@example.com")
	ctx := context.Background()

	img := &domain.Image{UserID: user.ID, URL: "https://cdn.example.com/1.jpg"}
	require.NoError(t, images.Create(ctx, img))

	require.NoError(t, ratings.Upsert(ctx, &domain.Rating{UserID: user.ID, ImageID: img.ID, Score: 2}))
	require.NoError(t, ratings.Upsert(ctx, &domain.Rating{UserID: user.ID, ImageID: img.ID, Score: 5}))

	var count int64
	db.Model(&domain.Rating{}).Where("user_id = ? AND image_id = ?", user.ID, img.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	stored, err := ratings.GetByUserAndImage(ctx, user.ID, img.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, stored.Score)

	avg, n, err := ratings.Average(ctx, img.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.InDelta(t, 5.0, avg, 0.001)
}

func TestRatingRepository_AverageWithNoVotes(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingRepository(db)

	avg, n, err := ratings.Average(context.Background(), 12345)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, avg)
}

func TestCommentRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	images := NewImageRepository(db)
	comments := NewCommentRepository(db)
	user := createTestUser(t, db, "alice@example.com")
	ctx := context.Background()

	img := &domain.Image{UserID: user.ID, URL: "https://cdn.example.com/1.jpg"}
	require.NoError(t, images.Create(ctx, img))

	c1 := &domain.Comment{UserID: user.ID, ImageID: img.ID, Text: "first"}
	c2 := &domain.Comment{UserID: user.ID, ImageID: img.ID, Text: "second"}
	require.NoError(t, comments.Create(ctx, c1))
	require.NoError(t, comments.Create(ctx, c2))

	listed, err := comments.GetByImageID(ctx, img.ID)
	assert.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].Text)

	c1.Text = "edited"
	require.NoError(t, comments.Update(ctx, c1))
	got, err := comments.GetByID(ctx, c1.ID)
	assert.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	require.NoError(t, comments.Delete(ctx, c1.ID))
	assert.ErrorIs(t, comments.Delete(ctx, c1.ID), gorm.ErrRecordNotFound)
}
