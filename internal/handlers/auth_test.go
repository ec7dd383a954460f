package handlers_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndMe(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "GET", "/api/me", token, nil)
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "a@x.com", user["email"])
	assert.Equal(t, "a@x.com", user["username"], "username defaults to the email")
	assert.EqualValues(t, 100, user["energy_level"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/register", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	assert.Equal(t, 400, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, "POST", "/api/register", "", gin.H{
		"email":    "a@x.com",
		"password": "short",
	})
	assert.Equal(t, 400, w.Code)
}

func TestLogin(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "a@x.com", user["email"])
	assert.EqualValues(t, 1, user["streak"], "first login starts the streak")
}

func TestLoginByUsername(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/login", "", gin.H{
		"username": "a@x.com",
		"password": "password123",
	})
	assert.Equal(t, 200, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	assert.Equal(t, 401, w.Code)
}

func TestLoginStreakSameDay(t *testing.T) {
	r := setupServer(t)
	registerUser(t, r, "a@x.com")

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, "POST", "/api/login", "", gin.H{
			"email":    "a@x.com",
			"password": "password123",
		})
		require.Equal(t, 200, w.Code)
	}

	w := doJSON(t, r, "POST", "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "password123",
	})
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.EqualValues(t, 1, user["streak"], "repeat logins on the same day keep the streak")
}

func TestStreakEndpoint(t *testing.T) {
	r := setupServer(t)

	// Anonymous callers get the defaults.
	w := doJSON(t, r, "GET", "/api/streak", "", nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["streak"])
	assert.EqualValues(t, 100, body["energy"])

	token := registerUser(t, r, "a@x.com")
	doJSON(t, r, "POST", "/api/login", "", gin.H{"email": "a@x.com", "password": "password123"})

	w = doJSON(t, r, "GET", "/api/streak", token, nil)
	require.Equal(t, 200, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 1, body["streak"])
	assert.EqualValues(t, 100, body["energy"])
}

func TestMeRequiresAuth(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, "GET", "/api/me", "", nil)
	assert.Equal(t, 401, w.Code)
}

func TestListingsClosedByDefault(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, "GET", "/api/users", "", nil)
	assert.Equal(t, 401, w.Code)

	w = doJSON(t, r, "GET", "/api/spaces", "", nil)
	assert.Equal(t, 401, w.Code)
}

func TestOpenListingsPolicy(t *testing.T) {
	r := setupServer(t)
	t.Setenv("OPEN_LISTINGS", "true")

	w := doJSON(t, r, "GET", "/api/users", "", nil)
	assert.Equal(t, 200, w.Code)

	// Anonymous space listing is reachable but never leaks rows.
	registerUser(t, r, "a@x.com")
	token := registerUser(t, r, "b@x.com")
	doJSON(t, r, "POST", "/api/spaces", token, gin.H{"name": "Trabajo"})

	w = doJSON(t, r, "GET", "/api/spaces", "", nil)
	require.Equal(t, 200, w.Code)
	assert.Empty(t, decodeList(t, w))
}
