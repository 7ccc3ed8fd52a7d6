package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/adoption-api/internal/application/adoption"
	"github.com/pawhaven/adoption-api/internal/application/auth"
	"github.com/pawhaven/adoption-api/internal/application/usecase"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/infrastructure/memory"
	apphttp "github.com/pawhaven/adoption-api/internal/interfaces/http"
	"github.com/pawhaven/adoption-api/pkg/config"
	pkgjwt "github.com/pawhaven/adoption-api/pkg/jwt"
)

// testEnv wires the full router onto in-memory repositories.
type testEnv struct {
	app   *fiber.App
	users *memory.UserRepo
	pets  *memory.PetRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := memory.NewUserRepository()
	pets := memory.NewPetRepository()
	shelter := config.ShelterConfig{AnimalTypes: []string{"dog", "cat", "rabbit"}}
	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(users, jwtCfg),
		UserUC:     usecase.NewUserUseCase(users),
		PetUC:      usecase.NewPetUseCase(pets, shelter),
		AdoptionUC: adoption.NewAdoptionUseCase(pets),
		SavedUC:    adoption.NewSavedUseCase(users, pets),
		JWTSecret:  testJWTSecret,
	})
	return &testEnv{app: app, users: users, pets: pets}
}

// seedAdmin provisions an admin directly in the store, mirroring the seedadmin
// command, and returns a bearer token for it.
func (e *testEnv) seedAdmin(t *testing.T) string {
	t.Helper()
	now := time.Now()
	admin := &entity.User{
		ID:          "admin-1",
		FirstName:   "Ada",
		LastName:    "Admin",
		Email:       "admin@example.com",
		Role:        entity.RoleAdmin,
		SavedPetIDs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.users.Create(context.Background(), admin))
	tok, err := pkgjwt.Generate(testJWTSecret, admin.ID, admin.Role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) signup(t *testing.T, email string) (token, userID string) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/signup", "", map[string]string{
		"firstName":       "Jane",
		"lastName":        "Doe",
		"email":           email,
		"phone":           "+4512345678",
		"password":        "passw0rd",
		"passwordConfirm": "passw0rd",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}](t, resp)
	require.NotEmpty(t, out.Token)
	require.Equal(t, "member", out.User.Role)
	return "Bearer " + out.Token, out.User.ID
}

func (e *testEnv) createPet(t *testing.T, adminToken, name string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/pet", adminToken, map[string]any{
		"name":          name,
		"type":          "dog",
		"breed":         "beagle",
		"birthDate":     time.Now().AddDate(-2, 0, 0),
		"weight":        "12.5",
		"height":        "40",
		"imageFileName": name + ".jpg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, resp)
	require.Equal(t, entity.StatusAvailable, out.Status)
	return out.ID
}

// Signup issues a member token; an admin creates an available pet; the member
// fosters it; a second adopter loses with a precondition failure.
func TestScenario_SignupAdoptConflict(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedAdmin(t)

	userToken, userID := env.signup(t, "a@x.com")
	petID := env.createPet(t, adminToken, "Rex")

	resp := env.do(t, http.MethodPut, "/pet/"+petID+"/adopt", userToken, map[string]string{"kind": "foster"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/pet/"+petID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pet := decode[struct {
		Status  string  `json:"status"`
		CarerID *string `json:"carerId"`
	}](t, resp)
	assert.Equal(t, entity.StatusFostered, pet.Status)
	require.NotNil(t, pet.CarerID)
	assert.Equal(t, userID, *pet.CarerID)

	otherToken, _ := env.signup(t, "b@x.com")
	resp = env.do(t, http.MethodPut, "/pet/"+petID+"/adopt", otherToken, map[string]string{"kind": "adopt"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "loser of the race gets a failed precondition")
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestScenario_ReturnOwnership(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedAdmin(t)
	userToken, _ := env.signup(t, "a@x.com")
	strangerToken, _ := env.signup(t, "b@x.com")
	petID := env.createPet(t, adminToken, "Rex")

	resp := env.do(t, http.MethodPut, "/pet/"+petID+"/adopt", userToken, map[string]string{"kind": "adopt"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/pet/"+petID+"/return", strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "ownership mismatch")
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/pet/"+petID+"/return", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/pet/"+petID, "", nil)
	pet := decode[struct {
		Status  string  `json:"status"`
		CarerID *string `json:"carerId"`
	}](t, resp)
	assert.Equal(t, entity.StatusAvailable, pet.Status)
	assert.Nil(t, pet.CarerID)
}

// Saving the same pet twice keeps a single entry both times.
func TestScenario_SaveIdempotent(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedAdmin(t)
	userToken, userID := env.signup(t, "a@x.com")
	petID := env.createPet(t, adminToken, "Rex")

	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodPut, "/pet/"+petID+"/save", userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		// An unrelated request in between reuses the server's request buffer;
		// the stored pet id must not be affected by it.
		resp = env.do(t, http.MethodGet, "/types", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodGet, "/saved/user/"+userID, userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		saved := decode[[]struct {
			ID string `json:"id"`
		}](t, resp)
		require.Len(t, saved, 1)
		assert.Equal(t, petID, saved[0].ID)
	}

	resp := env.do(t, http.MethodDelete, "/pet/"+petID+"/save", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/saved/user/"+userID, userToken, nil)
	saved := decode[[]struct {
		ID string `json:"id"`
	}](t, resp)
	assert.Empty(t, saved)
}

func TestTiering(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.signup(t, "a@x.com")

	// Public routes without a token
	resp := env.do(t, http.MethodGet, "/pet", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/types", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Authenticated route without a token: missing credential
	resp = env.do(t, http.MethodGet, "/currentuser", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Admin route with a member token: insufficient privilege
	resp = env.do(t, http.MethodGet, "/user", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/pet", userToken, map[string]string{"name": "Rex"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestCurrentUser_ResolvesSubject(t *testing.T) {
	env := newTestEnv(t)
	userToken, userID := env.signup(t, "a@x.com")

	resp := env.do(t, http.MethodGet, "/currentuser", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}](t, resp)
	assert.Equal(t, userID, out.ID)
	assert.Equal(t, "a@x.com", out.Email)
}

func TestPetSearch_Filters(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedAdmin(t)
	userToken, _ := env.signup(t, "a@x.com")

	rexID := env.createPet(t, adminToken, "Rex")
	env.createPet(t, adminToken, "Whiskers")

	// Name filter
	resp := env.do(t, http.MethodGet, "/pet?name=rex", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Rex", out.Items[0].Name)

	// Weight range excludes both (each weighs 12.5)
	resp = env.do(t, http.MethodGet, "/pet?minWeight=20", "", nil)
	out = decode[struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}](t, resp)
	assert.Empty(t, out.Items)

	// Status filter follows the adoption lifecycle
	resp = env.do(t, http.MethodPut, "/pet/"+rexID+"/adopt", userToken, map[string]string{"kind": "adopt"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/pet?status=%s", entity.StatusAvailable), "", nil)
	out = decode[struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Whiskers", out.Items[0].Name)

	// Bad measure is a field error
	resp = env.do(t, http.MethodGet, "/pet?minWeight=heavy", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fieldErrs := decode[map[string]string](t, resp)
	assert.Contains(t, fieldErrs, "minWeight")
}

func TestAdminCreatePet_Validation(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedAdmin(t)

	resp := env.do(t, http.MethodPost, "/pet", adminToken, map[string]any{
		"name":   "",
		"type":   "dragon",
		"weight": "0",
		"height": "-3",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fieldErrs := decode[map[string]string](t, resp)
	for _, field := range []string{"name", "type", "image", "weight", "height"} {
		assert.Contains(t, fieldErrs, field)
	}
}

func TestListByCarer(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.seedAdmin(t)
	userToken, userID := env.signup(t, "a@x.com")
	petID := env.createPet(t, adminToken, "Rex")

	resp := env.do(t, http.MethodPut, "/pet/"+petID+"/adopt", userToken, map[string]string{"kind": "foster"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/pet/user/"+userID, userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[[]struct {
		ID string `json:"id"`
	}](t, resp)
	require.Len(t, out, 1)
	assert.Equal(t, petID, out[0].ID)
}

func TestUpdateProfile_OwnershipAndTokenReissue(t *testing.T) {
	env := newTestEnv(t)
	userToken, userID := env.signup(t, "a@x.com")
	otherToken, _ := env.signup(t, "b@x.com")

	// Someone else's profile: ownership mismatch
	resp := env.do(t, http.MethodPut, "/user/"+userID, otherToken, map[string]string{"bio": "hacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Own profile with email change: fresh token in the response
	resp = env.do(t, http.MethodPut, "/user/"+userID, userToken, map[string]string{"email": "a2@x.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "a2@x.com", out.User.Email)
}
