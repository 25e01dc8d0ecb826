package post

import (
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/gorilla/mux"
    "github.com/socialboard/socialboard-server/cmd/models"
    "github.com/socialboard/socialboard-server/db"
    "github.com/socialboard/socialboard-server/service/rules"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
)

func setupTest(t *testing.T) (*mux.Router, *gorm.DB) {
    t.Helper()

    gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
        TranslateError: true,
    })
    require.NoError(t, err)
    require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Interaction{}))

    users := db.NewUserRepository(gdb)
    posts := db.NewPostRepository(gdb)
    interactions := db.NewInteractionRepository(gdb)

    router := mux.NewRouter()
    NewHandler(posts, interactions, rules.New(users, posts, interactions)).RegisterRoutes(router)
    return router, gdb
}

func doRequest(t *testing.T, router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
    t.Helper()

    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set("Content-Type", "application/json")
    }
    rec := httptest.NewRecorder()
    router.ServeHTTP(rec, req)
    return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
    t.Helper()

    var body map[string]interface{}
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    return body
}

func seedUser(t *testing.T, gdb *gorm.DB, nickname, city string) models.User {
    t.Helper()

    user := models.User{Nickname: nickname, Age: 30, City: city}
    require.NoError(t, gdb.Create(&user).Error)
    return user
}

func seedPost(t *testing.T, gdb *gorm.DB, authorID uint, title string) models.Post {
    t.Helper()

    post := models.Post{Title: title, AuthorID: authorID}
    require.NoError(t, gdb.Create(&post).Error)
    return post
}

func strPtr(s string) *string { return &s }

func TestGetPostsEmpty(t *testing.T) {
    router, _ := setupTest(t)

    rec := doRequest(t, router, http.MethodGet, "/posts", "")

    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.Equal(t, "No posts found!", decodeBody(t, rec)["message"])
}

func TestGetPostsAttachesInteractions(t *testing.T) {
    router, gdb := setupTest(t)
    author := seedUser(t, gdb, "ada", "rome")
    post := seedPost(t, gdb, author.ID, "first")
    require.NoError(t, gdb.Create(&models.Interaction{
        Type: models.InteractionComment, AuthorID: author.ID, PostID: post.ID, Content: strPtr("nice"),
    }).Error)

    rec := doRequest(t, router, http.MethodGet, "/posts", "")

    assert.Equal(t, http.StatusOK, rec.Code)
    body := decodeBody(t, rec)
    assert.Equal(t, "Here is the requested posts list", body["message"])
    assert.Equal(t, float64(1), body["count"])
    posts := body["posts"].([]interface{})
    interactions := posts[0].(map[string]interface{})["interactions"].([]interface{})
    assert.Len(t, interactions, 1)
}

func TestGetPostsFilters(t *testing.T) {
    router, gdb := setupTest(t)
    ada := seedUser(t, gdb, "ada", "rome")
    bob := seedUser(t, gdb, "bob", "milan")
    seedPost(t, gdb, ada.ID, "ada's post")
    seedPost(t, gdb, bob.ID, "bob's post")

    rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/posts?author_id=%d", ada.ID), "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(1), decodeBody(t, rec)["count"])

    today := time.Now().Format("2006-01-02")
    rec = doRequest(t, router, http.MethodGet, "/posts?date="+today, "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(2), decodeBody(t, rec)["count"])

    rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/posts?author_id=%d&date=2000-01-01", ada.ID), "")
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPostsQueryGuards(t *testing.T) {
    router, _ := setupTest(t)

    rec := doRequest(t, router, http.MethodGet, "/posts?date=2024-1-1", "")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "The date parameter must be a string in YYYY-MM-DD format", decodeBody(t, rec)["error"])

    rec = doRequest(t, router, http.MethodGet, "/posts?author_id=abc", "")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "The author_id in the query parameters must necessarly be a number!", decodeBody(t, rec)["error"])
}

func TestGetPostByID(t *testing.T) {
    router, gdb := setupTest(t)
    ada := seedUser(t, gdb, "ada", "rome")
    bob := seedUser(t, gdb, "bob", "milan")
    post := seedPost(t, gdb, ada.ID, "hello")
    require.NoError(t, gdb.Create(&models.Interaction{
        Type: models.InteractionComment, AuthorID: ada.ID, PostID: post.ID, Content: strPtr("from rome"),
    }).Error)
    require.NoError(t, gdb.Create(&models.Interaction{
        Type: models.InteractionComment, AuthorID: bob.ID, PostID: post.ID, Content: strPtr("from milan"),
    }).Error)

    rec := doRequest(t, router, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), "")
    assert.Equal(t, http.StatusOK, rec.Code)
    body := decodeBody(t, rec)
    assert.Equal(t, "Here is the chosen post!", body["message"])
    got := body["post"].(map[string]interface{})
    assert.Len(t, got["interactions"], 2)

    // The city filter is matched lower-cased against the stored city.
    rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/posts/%d?city=MILAN", post.ID), "")
    assert.Equal(t, http.StatusOK, rec.Code)
    got = decodeBody(t, rec)["post"].(map[string]interface{})
    assert.Len(t, got["interactions"], 1)
}

func TestGetPostByIDMissing(t *testing.T) {
    router, _ := setupTest(t)

    rec := doRequest(t, router, http.MethodGet, "/posts/99", "")

    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.Equal(t, "No post found with selected ID!", decodeBody(t, rec)["message"])
}

func TestCreatePost(t *testing.T) {
    router, gdb := setupTest(t)
    ada := seedUser(t, gdb, "ada", "rome")

    rec := doRequest(t, router, http.MethodPost, "/posts", fmt.Sprintf(`{"title":"Hello","author_id":%d}`, ada.ID))

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "Post successfully created!", decodeBody(t, rec)["message"])
}

func TestCreatePostUnknownAuthor(t *testing.T) {
    router, gdb := setupTest(t)

    rec := doRequest(t, router, http.MethodPost, "/posts", `{"title":"Hello","author_id":9999}`)

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "The user who's trying to make a post doesn't exist!", decodeBody(t, rec)["error"])

    var count int64
    require.NoError(t, gdb.Model(&models.Post{}).Count(&count).Error)
    assert.Zero(t, count)
}

func TestCreatePostValidation(t *testing.T) {
    router, _ := setupTest(t)

    rec := doRequest(t, router, http.MethodPost, "/posts", `{"title":"  ","author_id":1}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "Please insert all the required parameters for the creation of a Post! Post title must be a not empty string", decodeBody(t, rec)["error"])

    rec = doRequest(t, router, http.MethodPost, "/posts", `{"title":"Hello"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "Please insert all the required parameters for the creation of a Post! The post's author_id must be a number!", decodeBody(t, rec)["error"])
}

func TestUpdatePost(t *testing.T) {
    router, gdb := setupTest(t)
    ada := seedUser(t, gdb, "ada", "rome")
    post := seedPost(t, gdb, ada.ID, "old title")

    rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID),
        fmt.Sprintf(`{"title":"new title","author_id":%d}`, ada.ID))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "Post successfully updated!", decodeBody(t, rec)["message"])

    var got models.Post
    require.NoError(t, gdb.First(&got, post.ID).Error)
    assert.Equal(t, "new title", got.Title)
}

func TestUpdatePostWrongAuthor(t *testing.T) {
    router, gdb := setupTest(t)
    ada := seedUser(t, gdb, "ada", "rome")
    post := seedPost(t, gdb, ada.ID, "old title")

    rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("/posts/%d", post.ID), `{"title":"new title","author_id":555}`)

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "Can't update post. Selected Post doesn't exist!", decodeBody(t, rec)["error"])
}

func TestDeletePostCascadesInteractions(t *testing.T) {
    router, gdb := setupTest(t)
    ada := seedUser(t, gdb, "ada", "rome")
    post := seedPost(t, gdb, ada.ID, "doomed")
    other := seedPost(t, gdb, ada.ID, "survivor")
    require.NoError(t, gdb.Create(&models.Interaction{
        Type: models.InteractionComment, AuthorID: ada.ID, PostID: post.ID, Content: strPtr("bye"),
    }).Error)
    require.NoError(t, gdb.Create(&models.Interaction{
        Type: models.InteractionLike, AuthorID: ada.ID, PostID: other.ID,
    }).Error)

    rec := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID),
        fmt.Sprintf(`{"author_id":%d}`, ada.ID))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "Post successfully deleted!", decodeBody(t, rec)["message"])

    var count int64
    require.NoError(t, gdb.Model(&models.Interaction{}).Where("post_id = ?", post.ID).Count(&count).Error)
    assert.Zero(t, count, "the deleted post's interactions must go with it")

    require.NoError(t, gdb.Model(&models.Interaction{}).Where("post_id = ?", other.ID).Count(&count).Error)
    assert.Equal(t, int64(1), count, "other posts' interactions stay")
}

func TestDeletePostMissing(t *testing.T) {
    router, gdb := setupTest(t)
    ada := seedUser(t, gdb, "ada", "rome")
    post := seedPost(t, gdb, ada.ID, "kept")
    require.NoError(t, gdb.Create(&models.Interaction{
        Type: models.InteractionLike, AuthorID: ada.ID, PostID: post.ID,
    }).Error)

    rec := doRequest(t, router, http.MethodDelete, "/posts/999",
        fmt.Sprintf(`{"author_id":%d}`, ada.ID))

    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.Equal(t, "Can't delete post. The selected Post doesn't already exist!", decodeBody(t, rec)["error"])

    var count int64
    require.NoError(t, gdb.Model(&models.Interaction{}).Count(&count).Error)
    assert.Equal(t, int64(1), count, "a missed delete must leave interactions untouched")
}
