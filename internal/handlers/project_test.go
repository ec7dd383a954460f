package handlers_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doRaw(t, r, "POST", "/api/projects", token,
		`{"id": 12, "titulo": "Tesis", "objetivo": "2024-12-01", "progreso": 25, "espacio": "Escuela", "etiquetas": "uni,urgente"}`)
	require.Equal(t, 201, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "12", body["id"])
	assert.Equal(t, "Tesis", body["titulo"])
	assert.Equal(t, "2024-12-01", body["objetivo"])
	assert.EqualValues(t, 25, body["progreso"])
	assert.Equal(t, "Escuela", body["espacio_nombre"])
	assert.Equal(t, "uni,urgente", body["etiquetas"])
	assert.Equal(t, "a@x.com", body["owner_email"])
}

func TestCreateProjectDefaults(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/projects", token, gin.H{"titulo": "Minimal"})
	require.Equal(t, 201, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "#8B5CF6", body["color"])
	assert.Equal(t, "Personal", body["espacio_nombre"])
	assert.Nil(t, body["objetivo"])
	assert.EqualValues(t, 0, body["progreso"])
	assert.EqualValues(t, 1, body["version"])
}

func TestCreateProjectRequiresTitulo(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/projects", token, gin.H{"progreso": 10})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "titulo")
}

func TestUpdateProjectProgress(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/projects", token, gin.H{"id": "pr1", "titulo": "Curso"})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, r, "PATCH", "/api/projects/pr1", token, gin.H{"progreso": 80, "objetivo": "2024-06-30"})
	require.Equal(t, 200, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.EqualValues(t, 80, body["progreso"])
	assert.Equal(t, "2024-06-30", body["objetivo"])
	assert.Equal(t, "Curso", body["titulo"])
	assert.EqualValues(t, 2, body["version"])
}

func TestProjectOwnershipIsolation(t *testing.T) {
	r := setupServer(t)
	alice := registerUser(t, r, "alice@x.com")
	bob := registerUser(t, r, "bob@x.com")

	w := doJSON(t, r, "POST", "/api/projects", alice, gin.H{"id": "pr2", "titulo": "Secreto"})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, r, "GET", "/api/projects/pr2", bob, nil)
	assert.Equal(t, 404, w.Code)

	w = doJSON(t, r, "GET", "/api/projects", bob, nil)
	require.Equal(t, 200, w.Code)
	assert.Empty(t, decodeList(t, w))
}

func TestDeleteProject(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "a@x.com")

	w := doJSON(t, r, "POST", "/api/projects", token, gin.H{"id": "pr3", "titulo": "Viejo"})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, r, "DELETE", "/api/projects/pr3", token, nil)
	assert.Equal(t, 204, w.Code)

	w = doJSON(t, r, "GET", "/api/projects/pr3", token, nil)
	assert.Equal(t, 404, w.Code)
}
