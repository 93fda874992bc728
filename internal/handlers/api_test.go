package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"pixfeed/internal/db"
	"pixfeed/internal/router"
	"pixfeed/internal/services"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	g, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(g))
	db.DB = g

	t.Setenv("UPLOAD_DIR", t.TempDir())

	r := gin.New()
	router.RegisterRoutes(r, services.NewDiskBlobStore())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// newImageForm builds the multipart body for a photo upload. The file part
// needs an explicit image/* content type; CreateFormFile would stamp it
// application/octet-stream.
func newImageForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="photo.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func doMultipart(t *testing.T, r *gin.Engine, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := newImageForm(t, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, handle string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/accounts", gin.H{"handle": handle, "secret": "hunter22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/sessions", gin.H{"handle": handle, "secret": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)
	account := decode(t, w)["account"].(map[string]any)
	return fmt.Sprintf("%v", account["identityKey"])
}

func TestRegisterValidation(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/accounts", gin.H{"handle": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w)["message"])

	w = doJSON(t, r, http.MethodPost, "/accounts", gin.H{"handle": "a@x.com", "secret": "s3cret"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/accounts", gin.H{"handle": "a@x.com", "secret": "other"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginAndVerify(t *testing.T) {
	r := setupServer(t)
	key := registerAndLogin(t, r, "a@x.com")

	// Bad secret and unknown handle look identical
	w := doJSON(t, r, http.MethodPost, "/sessions", gin.H{"handle": "a@x.com", "secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	badSecretMsg := decode(t, w)["message"]
	w = doJSON(t, r, http.MethodPost, "/sessions", gin.H{"handle": "ghost@x.com", "secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, badSecretMsg, decode(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/sessions/verify?identityKey="+key, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	account := decode(t, w)["account"].(map[string]any)
	assert.Equal(t, "a@x.com", account["handle"])
	// The credential never leaves the server
	_, leaked := account["Password"]
	assert.False(t, leaked)

	w = doJSON(t, r, http.MethodGet, "/sessions/verify", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/sessions/verify?identityKey=999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileUpdateAndAvatar(t *testing.T) {
	r := setupServer(t)
	key := registerAndLogin(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/accounts/"+key+"/profile", gin.H{"identityKey": key, "biography": "hello there"})
	require.Equal(t, http.StatusOK, w.Code)
	account := decode(t, w)["account"].(map[string]any)
	assert.Equal(t, "hello there", account["biography"])

	w = doJSON(t, r, http.MethodPost, "/accounts/"+key+"/profile", gin.H{"biography": "no identity"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/accounts/999/profile", gin.H{"identityKey": key, "biography": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doMultipart(t, r, "/accounts/"+key+"/avatar", map[string]string{"identityKey": key})
	require.Equal(t, http.StatusOK, w.Code)
	avatarRef := decode(t, w)["avatarRef"].(string)
	assert.True(t, strings.HasPrefix(avatarRef, "/static/uploads/"))

	// The new ref shows up on the account
	w = doJSON(t, r, http.MethodGet, "/sessions/verify?identityKey="+key, nil)
	account = decode(t, w)["account"].(map[string]any)
	assert.Equal(t, avatarRef, account["avatarRef"])
}

func TestFeedScenario(t *testing.T) {
	r := setupServer(t)
	alice := registerAndLogin(t, r, "a@x.com")
	bob := registerAndLogin(t, r, "b@x.com")

	// Alice posts a photo
	w := doMultipart(t, r, "/posts", map[string]string{
		"caption":     "first light",
		"identityKey": alice,
		"handle":      "a@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	post := decode(t, w)["post"].(map[string]any)
	postKey := fmt.Sprintf("%v", post["postKey"])

	// Top-level comment, then a reply to it
	w = doJSON(t, r, http.MethodPost, "/posts/"+postKey+"/comments", gin.H{
		"identityKey": alice, "handle": "a@x.com", "body": "C1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	c1 := decode(t, w)["comment"].(map[string]any)

	w = doJSON(t, r, http.MethodPost, "/posts/"+postKey+"/comments", gin.H{
		"identityKey": alice, "handle": "a@x.com", "body": "C2", "parentKey": c1["commentKey"],
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A reply to a parent that does not exist is rejected
	w = doJSON(t, r, http.MethodPost, "/posts/"+postKey+"/comments", gin.H{
		"identityKey": alice, "body": "dangling", "parentKey": 9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// So is a comment from an identity that does not exist
	w = doJSON(t, r, http.MethodPost, "/posts/"+postKey+"/comments", gin.H{
		"identityKey": "999", "body": "ghost",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Like toggle round trip
	w = doJSON(t, r, http.MethodPost, "/posts/"+postKey+"/likes", gin.H{"identityKey": alice})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["liked"])

	w = doJSON(t, r, http.MethodPost, "/posts/"+postKey+"/likes", gin.H{"identityKey": alice})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["liked"])

	// Feed filtered by local-part shorthand
	w = doJSON(t, r, http.MethodGet, "/posts?targetHandle=a&identityKey="+alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	enriched := posts[0]
	assert.EqualValues(t, 0, enriched["like_count"])
	assert.Equal(t, false, enriched["is_liked"])
	assert.Equal(t, "first light", enriched["caption"])
	comments := enriched["comments"].([]any)
	require.Len(t, comments, 2)
	assert.Equal(t, "C1", comments[0].(map[string]any)["body"])
	assert.Equal(t, "C2", comments[1].(map[string]any)["body"])

	// A filter that matches no account is an empty list, never a fault
	w = doJSON(t, r, http.MethodGet, "/posts?targetHandle=ghost", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Empty(t, posts)

	// Only the owner can delete
	w = doJSON(t, r, http.MethodDelete, "/posts/"+postKey+"?identityKey="+bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/posts/"+postKey+"?identityKey="+alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/posts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Empty(t, posts)

	w = doJSON(t, r, http.MethodDelete, "/posts/"+postKey+"?identityKey="+alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentDeleteOwnership(t *testing.T) {
	r := setupServer(t)
	alice := registerAndLogin(t, r, "a@x.com")
	bob := registerAndLogin(t, r, "b@x.com")

	w := doMultipart(t, r, "/posts", map[string]string{"identityKey": alice, "handle": "a@x.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	postKey := fmt.Sprintf("%v", decode(t, w)["post"].(map[string]any)["postKey"])

	w = doJSON(t, r, http.MethodPost, "/posts/"+postKey+"/comments", gin.H{"identityKey": alice, "body": "mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	commentKey := fmt.Sprintf("%v", decode(t, w)["comment"].(map[string]any)["commentKey"])

	w = doJSON(t, r, http.MethodDelete, "/comments/"+commentKey+"?identityKey="+bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/comments/"+commentKey+"?identityKey="+alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/comments/"+commentKey+"?identityKey="+alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePostValidation(t *testing.T) {
	r := setupServer(t)
	alice := registerAndLogin(t, r, "a@x.com")

	// No image part
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader("identityKey="+alice))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No identity
	w = doMultipart(t, r, "/posts", map[string]string{"caption": "orphan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown identity
	w = doMultipart(t, r, "/posts", map[string]string{"identityKey": "999"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	r := setupServer(t)
	registerAndLogin(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.EqualValues(t, 1, body["account_count"])
}
