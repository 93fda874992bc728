package services

import (
	"fmt"
	"pixfeed/internal/db"
	"pixfeed/internal/models"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package's gorm handle at a fresh in-memory database
// for one test. cache=shared keeps the database alive across the pool's
// connections; the test name keeps databases isolated from each other.
func setupTestDB(t *testing.T) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(g))
	db.DB = g
}

func createAccount(t *testing.T, handle string) *models.Account {
	t.Helper()
	account := models.Account{Handle: handle, Password: "hashed"}
	require.NoError(t, db.DB.Create(&account).Error)
	return &account
}

func createPost(t *testing.T, author *models.Account, caption string, createdAt time.Time) *models.Post {
	t.Helper()
	post := models.Post{
		AccountID: author.ID,
		Handle:    author.Handle,
		PhotoRef:  "/static/uploads/" + caption + ".jpg",
		Caption:   caption,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.DB.Create(&post).Error)
	return &post
}

func createComment(t *testing.T, post *models.Post, author *models.Account, body string, parentID *uint) *models.Comment {
	t.Helper()
	comment, err := CreateComment(post.ID, author.ID, author.Handle, body, parentID)
	require.NoError(t, err)
	return comment
}
