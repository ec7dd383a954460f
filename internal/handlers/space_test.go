package handlers_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/onelife-dev/one-backend/db"
	"github.com/onelife-dev/one-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSpaceByName(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Trabajo", "color": "#112233"})
	require.Equal(t, 201, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Trabajo", body["name"])
	assert.Equal(t, "#112233", body["color"])
	assert.Equal(t, "a@x.com", body["owner_email"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateSpaceExistingName(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Trabajo"})
	require.Equal(t, 201, w.Code)
	first := decodeBody(t, w)["id"]

	// Posting the same name again resolves to the same row.
	w = doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Trabajo"})
	require.Equal(t, 201, w.Code)
	assert.Equal(t, first, decodeBody(t, w)["id"])

	var count int64
	require.NoError(t, db.DB.Model(&models.Space{}).Where("name = ?", "Trabajo").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateSpaceRequiresName(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", token, gin.H{"color": "#000000"})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "name")
}

func TestListSpacesOwnerScoped(t *testing.T) {
	r := setupServer(t)
	alice := registerUser(t, r, "alice@x.com")
	bob := registerUser(t, r, "bob@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", alice, gin.H{"name": "Casa"})
	require.Equal(t, 201, w.Code)
	w = doJSON(t, r, "POST", "/api/spaces", bob, gin.H{"name": "Gimnasio"})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, r, "GET", "/api/spaces", alice, nil)
	require.Equal(t, 200, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Casa", list[0]["name"])
}

func TestUpdateSpace(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Casa"})
	require.Equal(t, 201, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, "PATCH", "/api/spaces/"+id, token, gin.H{"name": "Hogar", "color": "#ABCDEF"})
	require.Equal(t, 200, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Hogar", body["name"])
	assert.Equal(t, "#ABCDEF", body["color"])
	assert.EqualValues(t, 2, body["version"])
}

func TestUpdateSpaceDuplicateName(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Casa"})
	require.Equal(t, 201, w.Code)
	w = doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Trabajo"})
	require.Equal(t, 201, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, "PATCH", "/api/spaces/"+id, token, gin.H{"name": "Casa"})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestDeleteSpace(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Temporal"})
	require.Equal(t, 201, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, "DELETE", "/api/spaces/"+id, token, nil)
	assert.Equal(t, 204, w.Code)

	w = doJSON(t, r, "GET", "/api/spaces", token, nil)
	require.Equal(t, 200, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func TestDeleteSpaceForeignOwner(t *testing.T) {
	r := setupServer(t)
	alice := registerUser(t, r, "alice@x.com")
	bob := registerUser(t, r, "bob@x.com")

	w := doJSON(t, r, "POST", "/api/spaces", alice, gin.H{"name": "Casa"})
	require.Equal(t, 201, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, "DELETE", "/api/spaces/"+id, bob, nil)
	assert.Equal(t, 404, w.Code)
}
