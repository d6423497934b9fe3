package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"garage-be/internal/config"
	"garage-be/internal/controllers"
	"garage-be/internal/database"
	"garage-be/internal/repository"
	"garage-be/internal/router"
	"garage-be/internal/service"
)

func newTestClient(t *testing.T) *resty.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()

	db, err := database.NewConnection(config.DriverSQLite, config.SQLiteDSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db, config.DriverSQLite, logger))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	carRepo := repository.NewCarRepository(db)
	favouriteRepo := repository.NewFavouriteRepository(db)
	rel := service.NewRelations(userRepo, profileRepo, carRepo, favouriteRepo)

	engine := router.NewRouter(router.Controllers{
		Users:      controllers.NewUserController(service.NewUserService(userRepo, rel, nil, bcrypt.MinCost), logger),
		Profiles:   controllers.NewProfileController(service.NewProfileService(userRepo, profileRepo, nil), logger),
		Cars:       controllers.NewCarController(service.NewCarService(userRepo, carRepo, rel, nil), logger),
		Favourites: controllers.NewFavouriteController(service.NewFavouriteService(userRepo, carRepo, favouriteRepo, rel, nil), logger),
	}, logger)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return resty.New().
		SetBaseURL(srv.URL).
		SetHeader("Content-Type", "application/json")
}

type idBody struct {
	ID int64 `json:"id"`
}

func createUser(t *testing.T, client *resty.Client, email string) int64 {
	t.Helper()
	var out idBody
	resp, err := client.R().
		SetBody(map[string]interface{}{"email": email, "password": "pw", "age": 33}).
		SetResult(&out).
		Post("/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	return out.ID
}

func createCar(t *testing.T, client *resty.Client, name string) int64 {
	t.Helper()
	var out idBody
	resp, err := client.R().
		SetBody(map[string]interface{}{"model": "Mk1", "year": 1999, "name": name}).
		SetResult(&out).
		Post("/cars")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	return out.ID
}

func TestHealth(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.R().Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, resp.String())
}

func TestSitemap(t *testing.T) {
	client := newTestClient(t)

	var out struct {
		Endpoints []string `json:"endpoints"`
	}
	resp, err := client.R().SetResult(&out).Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, out.Endpoints, "GET /users/profile")
	assert.Contains(t, out.Endpoints, "POST /favourites/:id/:car_id")
	assert.Contains(t, out.Endpoints, "POST /users/:id/cars")
}

func TestUsers_CreateRequiresAllFields(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.R().
		SetBody(map[string]interface{}{"email": "a@b.com", "password": "pw"}).
		Post("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	assert.Equal(t, "Missing data", body["error"])

	resp, err = client.R().Get("/users")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, resp.String())
}

func TestUsers_CRUD(t *testing.T) {
	client := newTestClient(t)
	id := createUser(t, client, "a@b.com")

	resp, err := client.R().Get(fmt.Sprintf("/users/%d", id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"email":"a@b.com","age":33,"profile":null,"favourites":[]}`, id), resp.String())
	assert.NotContains(t, resp.String(), "password")

	resp, err = client.R().SetBody(map[string]interface{}{"age": 34}).Put(fmt.Sprintf("/users/%d", id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"email":"a@b.com","age":34,"profile":null,"favourites":[]}`, id), resp.String())

	resp, err = client.R().Delete(fmt.Sprintf("/users/%d", id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"message":"user deleted"}`, resp.String())

	resp, err = client.R().Get(fmt.Sprintf("/users/%d", id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.JSONEq(t, `{"error":"User not found"}`, resp.String())

	resp, err = client.R().SetBody(map[string]interface{}{"age": 1}).Put(fmt.Sprintf("/users/%d", id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestUsers_NonIntegerIDIsNotFound(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.R().Get("/users/abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestUsers_DuplicateEmail(t *testing.T) {
	client := newTestClient(t)
	createUser(t, client, "a@b.com")

	resp, err := client.R().
		SetBody(map[string]interface{}{"email": "a@b.com", "password": "pw", "age": 1}).
		Post("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestProfiles(t *testing.T) {
	client := newTestClient(t)
	id := createUser(t, client, "a@b.com")
	path := fmt.Sprintf("/users/%d/profile", id)

	resp, err := client.R().Get(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = client.R().SetBody(map[string]string{"title": "driver"}).Post(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().SetBody(map[string]string{"title": "driver", "bio": "likes cars"}).Post(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"user_id":%d,"title":"driver","bio":"likes cars"}`, id), resp.String())

	resp, err = client.R().SetBody(map[string]string{"title": "again", "bio": "x"}).Post(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().SetBody(map[string]string{"bio": "updated"}).Put(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"user_id":%d,"title":"driver","bio":"updated"}`, id), resp.String())

	resp, err = client.R().Get("/users/profile")
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`[{"user_id":%d,"title":"driver","bio":"updated"}]`, id), resp.String())

	resp, err = client.R().Delete(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"User profile deleted"}`, resp.String())

	resp, err = client.R().Delete(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = client.R().SetBody(map[string]string{"bio": "x"}).Put(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestProfiles_DeletedWithUser(t *testing.T) {
	client := newTestClient(t)
	id := createUser(t, client, "a@b.com")
	path := fmt.Sprintf("/users/%d/profile", id)

	resp, err := client.R().SetBody(map[string]string{"title": "t", "bio": "b"}).Post(path)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().Delete(fmt.Sprintf("/users/%d", id))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().Get(path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = client.R().Get("/users/profile")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, resp.String())
}

func TestCars(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.R().
		SetBody(map[string]interface{}{"model": "m", "year": 2000, "name": "n", "user_id": 77}).
		Post("/cars")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = client.R().SetBody(map[string]interface{}{"model": "m", "name": "n"}).Post("/cars")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	carID := createCar(t, client, "Golf")

	resp, err = client.R().SetBody(map[string]interface{}{"year": 2005}).Put(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"model":"Mk1","year":2005,"name":"Golf","favourite_of":[]}`, carID), resp.String())

	resp, err = client.R().Get("/cars")
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"model":"Mk1","year":2005,"name":"Golf","favourite_of":[]}]`, carID), resp.String())

	resp, err = client.R().Delete(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"car deleted"}`, resp.String())

	resp, err = client.R().Get(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.JSONEq(t, `{"error":"Car not found"}`, resp.String())
}

func TestCars_CreateForUser(t *testing.T) {
	client := newTestClient(t)
	userID := createUser(t, client, "a@b.com")

	resp, err := client.R().
		SetBody(map[string]interface{}{"model": "m", "year": 2000, "name": "n"}).
		Post(fmt.Sprintf("/users/%d/cars", userID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]interface{}{"model": "m", "year": 2000, "name": "n"}).
		Post(fmt.Sprintf("/users/%d/cars", userID+1))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestFavourites(t *testing.T) {
	client := newTestClient(t)
	userID := createUser(t, client, "a@b.com")
	carID := createCar(t, client, "Golf")

	resp, err := client.R().Post(fmt.Sprintf("/favourites/%d/%d", userID, carID+1))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = client.R().Get("/favourites")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, resp.String())

	var fav idBody
	resp, err = client.R().SetResult(&fav).Post(fmt.Sprintf("/favourites/%d/%d", userID, carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"user":{"id":%d,"email":"a@b.com"},"car":{"id":%d,"name":"Golf"}}`, fav.ID, userID, carID), resp.String())

	resp, err = client.R().Post(fmt.Sprintf("/favourites/%d/%d", userID, carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().Get("/favourites")
	require.NoError(t, err)
	var all []idBody
	require.NoError(t, json.Unmarshal(resp.Body(), &all))
	assert.Len(t, all, 1)

	resp, err = client.R().Get(fmt.Sprintf("/users/%d", userID))
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{
		"id": %d, "email": "a@b.com", "age": 33, "profile": null,
		"favourites": [{"id": %d, "model": "Mk1", "year": 1999, "name": "Golf",
			"favourite_of": [{"id": %d, "email": "a@b.com"}]}]
	}`, userID, carID, userID), resp.String())

	otherCar := createCar(t, client, "Polo")
	resp, err = client.R().
		SetBody(map[string]interface{}{"car_id": otherCar}).
		Put(fmt.Sprintf("/favourites/%d", fav.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"user":{"id":%d,"email":"a@b.com"},"car":{"id":%d,"name":"Polo"}}`, fav.ID, userID, otherCar), resp.String())

	resp, err = client.R().Delete(fmt.Sprintf("/favourites/%d", fav.ID))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"favourite deleted"}`, resp.String())

	resp, err = client.R().Get(fmt.Sprintf("/favourites/%d", fav.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestFavourites_DanglingCarIsExcluded(t *testing.T) {
	client := newTestClient(t)
	userID := createUser(t, client, "a@b.com")
	carID := createCar(t, client, "Golf")

	resp, err := client.R().Post(fmt.Sprintf("/favourites/%d/%d", userID, carID))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	resp, err = client.R().Delete(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().Get(fmt.Sprintf("/users/%d", userID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"email":"a@b.com","age":33,"profile":null,"favourites":[]}`, userID), resp.String())
}

func TestUsers_PasswordsOfAnyLength(t *testing.T) {
	client := newTestClient(t)

	passwords := map[string]string{
		"ascii":     strings.Repeat("p", 100),
		"multibyte": strings.Repeat("é", 60),
	}
	for name, password := range passwords {
		t.Run(name, func(t *testing.T) {
			var out idBody
			resp, err := client.R().
				SetBody(map[string]interface{}{"email": name + "@example.com", "password": password, "age": 20}).
				SetResult(&out).
				Post("/users")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())

			resp, err = client.R().
				SetBody(map[string]interface{}{"password": password + password}).
				Put(fmt.Sprintf("/users/%d", out.ID))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
			assert.NotContains(t, resp.String(), "password")
		})
	}
}

func TestIntegerFieldsOutOfRange(t *testing.T) {
	client := newTestClient(t)
	userID := createUser(t, client, "a@b.com")
	carID := createCar(t, client, "Golf")

	resp, err := client.R().
		SetBody(map[string]interface{}{"email": "big@b.com", "password": "pw", "age": 3000000000}).
		Post("/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]interface{}{"age": 3000000000}).
		Put(fmt.Sprintf("/users/%d", userID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]interface{}{"model": "m", "year": -3000000000, "name": "n"}).
		Post("/cars")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]interface{}{"year": 2147483648}).
		Put(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]interface{}{"year": 2147483647}).
		Put(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestCars_PatchOwner(t *testing.T) {
	client := newTestClient(t)
	userID := createUser(t, client, "a@b.com")
	carID := createCar(t, client, "Golf")

	resp, err := client.R().
		SetBody(map[string]interface{}{"user_id": userID + 100}).
		Put(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = client.R().
		SetBody(map[string]interface{}{"user_id": userID}).
		Put(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().
		SetBody(`{"user_id": null}`).
		Put(fmt.Sprintf("/cars/%d", carID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}
