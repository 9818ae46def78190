package routes

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/auth"
	"github.com/BruksfildServices01/barber-admin/internal/config"
	"github.com/BruksfildServices01/barber-admin/internal/dbtest"
	"github.com/BruksfildServices01/barber-admin/internal/dto"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/models"
	"github.com/BruksfildServices01/barber-admin/internal/storage"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testAPI struct {
	t  *testing.T
	r  *gin.Engine
	db *gorm.DB
}

func newAPI(t *testing.T) *testAPI {
	t.Helper()

	db := dbtest.Open(t)
	store, err := storage.NewFileSystemStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Images:    config.ImagesConfig{Storage: "fs", MaxBytes: 1 << 20},
	}

	r := gin.New()
	require.NoError(t, RegisterRoutes(r, db, cfg, store, zap.NewNop()))
	return &testAPI{t: t, r: r, db: db}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *testAPI) createUser(name, password, role string) models.User {
	a.t.Helper()

	hash, salt, err := auth.HashPassword(password)
	require.NoError(a.t, err)
	u := models.User{Name: name, PasswordHash: hash, PasswordSalt: salt, Role: role}
	require.NoError(a.t, a.db.Create(&u).Error)
	return u
}

func (a *testAPI) login(name, password string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/auth/login", "", map[string]string{"username": name, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		AccessToken string `json:"accessToken"`
	}](a.t, w).AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// ======================================================
// AUTH
// ======================================================

func TestLogin(t *testing.T) {
	api := newAPI(t)
	api.createUser("Admin", "qwerty", "ADMIN")

	token := api.login("Admin", "qwerty")
	assert.NotEmpty(t, token)

	w := api.do(http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[dto.UserDTO](t, w)
	assert.Equal(t, "Admin", me.Name)
	assert.Equal(t, "ADMIN", me.Role)
}

func TestLogin_FailuresLookAlike(t *testing.T) {
	api := newAPI(t)
	api.createUser("Admin", "qwerty", "ADMIN")

	wrongPassword := api.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "Admin", "password": "nope"})
	unknownUser := api.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "Ghost", "password": "qwerty"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())

	body := decode[httperr.HTTPError](t, wrongPassword)
	assert.Equal(t, "invalid_credentials", body.Code)
	assert.Equal(t, "Username/password are not valid.", body.Message)
}

func TestLogin_BadRequest(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "Admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoleChangeAppliesToIssuedToken(t *testing.T) {
	api := newAPI(t)
	u := api.createUser("Mike", "12345678", "GUEST")
	token := api.login("Mike", "12345678")

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/users", token, nil).Code)

	require.NoError(t, api.db.Model(&u).Update("role", "ADMIN").Error)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/users", token, nil).Code)

	require.NoError(t, api.db.Model(&u).Update("role", "GUEST").Error)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/users", token, nil).Code)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	api := newAPI(t)
	u := api.createUser("Mike", "12345678", "ADMIN")
	token := api.login("Mike", "12345678")

	require.NoError(t, api.db.Delete(&models.User{}, u.ID).Error)

	w := api.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuards(t *testing.T) {
	api := newAPI(t)
	api.createUser("Admin", "qwerty", "ADMIN")
	api.createUser("Mike", "12345678", "MANAGER")
	api.createUser("Gus", "guestpass", "GUEST")

	admin := api.login("Admin", "qwerty")
	manager := api.login("Mike", "12345678")
	guest := api.login("Gus", "guestpass")

	barber := map[string]string{"name": "Edward", "description": "I like scissors"}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"no token", http.MethodGet, "/users", "", nil, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/users", "abc.def.ghi", nil, http.StatusUnauthorized},
		{"admin lists users", http.MethodGet, "/users", admin, nil, http.StatusOK},
		{"manager lists users", http.MethodGet, "/users", manager, nil, http.StatusForbidden},
		{"guest lists users", http.MethodGet, "/users", guest, nil, http.StatusForbidden},
		{"manager creates barber", http.MethodPost, "/barbers", manager, barber, http.StatusCreated},
		{"guest creates barber", http.MethodPost, "/barbers", guest, barber, http.StatusForbidden},
		{"guest lists appointments", http.MethodGet, "/appointments", guest, nil, http.StatusOK},
		{"anonymous lists appointments", http.MethodGet, "/appointments", "", nil, http.StatusUnauthorized},
		{"anonymous lists barbers", http.MethodGet, "/barbers", "", nil, http.StatusOK},
		{"anonymous lists services", http.MethodGet, "/barber-services", "", nil, http.StatusOK},
		{"guest reads own profile", http.MethodGet, "/auth/me", guest, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "forbidden", decode[httperr.HTTPError](t, w).Code)
			}
		})
	}
}

// ======================================================
// USERS
// ======================================================

func TestCreateFirstUser(t *testing.T) {
	api := newAPI(t)

	w := api.do(http.MethodGet, "/users/any", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Body.String())

	w = api.do(http.MethodPost, "/users/create-first", "", map[string]string{"name": "Boss", "password": "pw", "role": "GUEST"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.UserDTO](t, w)
	assert.Equal(t, "Boss", created.Name)
	assert.Equal(t, "ADMIN", created.Role)
	assert.NotContains(t, w.Body.String(), "password")

	assert.Equal(t, "true", api.do(http.MethodGet, "/users/any", "", nil).Body.String())

	for _, body := range []any{
		map[string]string{"name": "Other", "password": "pw"},
		map[string]string{},
	} {
		w = api.do(http.MethodPost, "/users/create-first", "", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		e := decode[httperr.HTTPError](t, w)
		assert.Equal(t, "users_already_exist", e.Code)
		assert.Equal(t, "There already are existing users.", e.Message)
	}

	var count int64
	require.NoError(t, api.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	api.login("Boss", "pw")
}

func TestUsersAdmin(t *testing.T) {
	api := newAPI(t)
	api.createUser("Admin", "qwerty", "ADMIN")
	admin := api.login("Admin", "qwerty")

	w := api.do(http.MethodGet, "/users/roles", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["ADMIN","MANAGER","GUEST"]`, w.Body.String())

	w = api.do(http.MethodPost, "/users", admin, map[string]string{"name": "Zed", "password": "pw", "role": "OWNER"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Role must be one of the following: ADMIN, MANAGER, GUEST.", decode[httperr.HTTPError](t, w).Message)

	w = api.do(http.MethodPost, "/users", admin, map[string]string{"name": "Zed", "password": "pw", "role": "GUEST"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	zed := decode[dto.UserDTO](t, w)

	w = api.do(http.MethodPost, "/users", admin, map[string]string{"name": "Zed", "password": "pw", "role": "GUEST"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/users?sortField=name&sortOrder=desc", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.UserDTO](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "Zed", list[0].Name)
	assert.Equal(t, "Admin", list[1].Name)

	w = api.do(http.MethodGet, "/users/"+itoa(zed.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Zed", decode[dto.UserDTO](t, w).Name)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/users/999", admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/users/abc", admin, nil).Code)

	w = api.do(http.MethodPost, "/users/update", admin, map[string]any{"id": zed.ID, "password": "newpass", "role": "MANAGER"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "MANAGER", decode[dto.UserDTO](t, w).Role)

	api.login("Zed", "newpass")
	w = api.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "Zed", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/users/update", admin, map[string]any{"id": 999, "name": "Nobody"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ======================================================
// BARBERS / SERVICES
// ======================================================

func TestBarbers(t *testing.T) {
	api := newAPI(t)
	api.createUser("Mike", "12345678", "MANAGER")
	manager := api.login("Mike", "12345678")

	w := api.do(http.MethodPost, "/barbers", manager, map[string]any{"name": "Edward", "description": "I like scissors", "picture": "a.jpg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	edward := decode[dto.BarberDTO](t, w)
	require.NotNil(t, edward.Picture)
	assert.Equal(t, "a.jpg", *edward.Picture)

	w = api.do(http.MethodPost, "/barbers", manager, map[string]any{"name": "Boy", "description": "Just a boy"})
	require.Equal(t, http.StatusCreated, w.Code)
	boy := decode[dto.BarberDTO](t, w)
	assert.Nil(t, boy.Picture)

	// Absent picture leaves it, explicit null clears it.
	w = api.do(http.MethodPost, "/barbers/update", manager, map[string]any{"id": edward.ID, "description": "Scissors"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[dto.BarberDTO](t, w)
	assert.Equal(t, "Scissors", updated.Description)
	require.NotNil(t, updated.Picture)

	w = api.do(http.MethodPost, "/barbers/update", manager, `{"id":`+itoa(edward.ID)+`,"picture":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[dto.BarberDTO](t, w).Picture)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/barbers/update", manager, map[string]any{"id": 999, "name": "X"}).Code)

	w = api.do(http.MethodPost, "/barbers/delete", manager, map[string]any{"id": boy.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode[dto.BarberDTO](t, w).DeletedAt)

	w = api.do(http.MethodGet, "/barbers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.BarberDTO](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Edward", list[0].Name)

	w = api.do(http.MethodGet, "/barbers?includeDeleted=true&sortField=name", "", nil)
	list = decode[[]dto.BarberDTO](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "Boy", list[0].Name)

	w = api.do(http.MethodGet, "/barbers/"+itoa(boy.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode[dto.BarberDTO](t, w).DeletedAt)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/barbers/999", "", nil).Code)
}

func TestBarberServices(t *testing.T) {
	api := newAPI(t)
	api.createUser("Admin", "qwerty", "ADMIN")
	admin := api.login("Admin", "qwerty")

	w := api.do(http.MethodPost, "/barber-services", admin, map[string]string{"name": "Haircut", "price": "abc", "description": "Just a haircut"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, svc := range []map[string]string{
		{"name": "Haircut", "price": "10", "description": "Just a haircut"},
		{"name": "Trim", "price": "5", "description": "Let's make it shorter"},
	} {
		w = api.do(http.MethodPost, "/barber-services", admin, svc)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = api.do(http.MethodGet, "/barber-services?sortField=name&sortOrder=desc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.BarberServiceDTO](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "Trim", list[0].Name)
	assert.Equal(t, "Haircut", list[1].Name)

	w = api.do(http.MethodPost, "/barber-services/update", admin, map[string]any{"id": list[0].ID, "name": "Trim (ultra)"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Trim (ultra)", decode[dto.BarberServiceDTO](t, w).Name)

	w = api.do(http.MethodGet, "/barber-services/"+itoa(list[0].ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Let's make it shorter", decode[dto.BarberServiceDTO](t, w).Description)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/barber-services/999", "", nil).Code)
}

// ======================================================
// APPOINTMENTS
// ======================================================

func TestAppointments(t *testing.T) {
	api := newAPI(t)
	api.createUser("Mike", "12345678", "MANAGER")
	api.createUser("Gus", "guestpass", "GUEST")
	manager := api.login("Mike", "12345678")
	guest := api.login("Gus", "guestpass")

	edward := models.Barber{Name: "Edward", Description: "I like scissors"}
	boy := models.Barber{Name: "Boy", Description: "Just a boy"}
	haircut := models.BarberService{Name: "Haircut", Description: "Just a haircut", Price: "10"}
	require.NoError(t, api.db.Create(&edward).Error)
	require.NoError(t, api.db.Create(&boy).Error)
	require.NoError(t, api.db.Create(&haircut).Error)

	book := func(barberID uint, at string) *httptest.ResponseRecorder {
		return api.do(http.MethodPost, "/appointments", "", map[string]any{
			"barberId":          barberID,
			"barberServiceId":   haircut.ID,
			"datetime":          at,
			"clientName":        "John",
			"clientPhoneNumber": "111111",
		})
	}

	w := book(edward.ID, "2024-05-10T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[dto.AppointmentDTO](t, w)
	assert.Equal(t, "Edward", first.Barber.Name)
	assert.Equal(t, "Haircut", first.BarberService.Name)
	assert.Equal(t, "2024-05-10T10:00:00.000Z", first.Datetime)

	w = book(boy.ID, "2024-05-09T09:00:00+02:00")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2024-05-09T07:00:00.000Z", decode[dto.AppointmentDTO](t, w).Datetime)

	assert.Equal(t, http.StatusBadRequest, book(999, "2024-05-10T10:00:00Z").Code)
	assert.Equal(t, http.StatusBadRequest, book(edward.ID, "tomorrow").Code)

	w = api.do(http.MethodGet, "/appointments?sortField=barber", guest, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[[]dto.AppointmentDTO](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "Boy", list[0].Barber.Name)
	assert.Equal(t, "Edward", list[1].Barber.Name)

	w = api.do(http.MethodGet, "/appointments?sortField=datetime&sortOrder=desc", guest, nil)
	list = decode[[]dto.AppointmentDTO](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	w = api.do(http.MethodGet, "/appointments?sortField=service", guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.AppointmentDTO](t, w), 2)

	w = api.do(http.MethodGet, "/appointments/"+itoa(first.ID), guest, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "John", decode[dto.AppointmentDTO](t, w).ClientName)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/appointments/999", guest, nil).Code)

	update := map[string]any{"id": first.ID, "barberId": boy.ID, "clientName": "Jack"}
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/appointments/update", guest, update).Code)

	w = api.do(http.MethodPost, "/appointments/update", manager, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	changed := decode[dto.AppointmentDTO](t, w)
	assert.Equal(t, "Boy", changed.Barber.Name)
	assert.Equal(t, "Jack", changed.ClientName)
	assert.Equal(t, "111111", changed.ClientPhoneNumber)
	assert.Equal(t, first.Datetime, changed.Datetime)

	assert.Equal(t, http.StatusNotFound,
		api.do(http.MethodPost, "/appointments/update", manager, map[string]any{"id": 999, "clientName": "X"}).Code)
	assert.Equal(t, http.StatusBadRequest,
		api.do(http.MethodPost, "/appointments/update", manager, map[string]any{"id": first.ID, "barberServiceId": 999}).Code)
}

// ======================================================
// IMAGES
// ======================================================

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (a *testAPI) upload(token, field, filename string, data []byte) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(a.t, err)
	_, err = fw.Write(data)
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func TestImages(t *testing.T) {
	api := newAPI(t)
	api.createUser("Gus", "guestpass", "GUEST")
	guest := api.login("Gus", "guestpass")
	data := pngBytes(t)

	assert.Equal(t, http.StatusUnauthorized, api.upload("", "file", "me.png", data).Code)
	assert.Equal(t, http.StatusBadRequest, api.upload(guest, "other", "me.png", data).Code)
	assert.Equal(t, http.StatusBadRequest, api.upload(guest, "file", "notes.png", []byte("plain text")).Code)

	w := api.upload(guest, "file", "me.png", data)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	name := w.Body.String()
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, name)

	w = api.do(http.MethodGet, "/images/"+name, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, data, w.Body.Bytes())

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/images/00000000-0000-0000-0000-000000000000.png", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/images/secret.txt", "", nil).Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
