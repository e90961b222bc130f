package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/deppfellow/wedding-backend/internal/handler"
	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
	"github.com/deppfellow/wedding-backend/internal/service"
	"github.com/deppfellow/wedding-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t      *testing.T
	ts     *testutil.TestServer
	router *echo.Echo
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ts := testutil.NewTestServer(t)
	repos := repository.NewRepositories(ts.Store)

	services, err := service.NewServices(ts.Server, repos)
	require.NoError(t, err)

	return &testAPI{
		t:      t,
		ts:     ts,
		router: NewRouter(ts.Server, handler.NewHandlers(ts.Server, services)),
		token:  ts.Auth.AddUser("admin@example.com", "secret123"),
	}
}

func (api *testAPI) serve(req *http.Request, authed bool) *httptest.ResponseRecorder {
	if authed {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+api.token)
	}
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func (api *testAPI) json(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(api.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return api.serve(req, authed)
}

func (api *testAPI) upload(path string, fields map[string]string, filename string, data []byte) *httptest.ResponseRecorder {
	body, contentType := testutil.MultipartBody(api.t, fields, filename, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	return api.serve(req, true)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAuthRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodPost, "/signup", map[string]string{"email": "second@example.com", "password": "hunter22"}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	signed := decode[model.TokenResponse](t, rec)
	assert.Equal(t, "User created successfully", signed.Message)
	assert.NotEmpty(t, signed.Token)

	rec = api.json(http.MethodPost, "/login", map[string]string{"email": "admin@example.com", "password": "secret123"}, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[model.TokenResponse](t, rec).Token)

	rec = api.json(http.MethodPost, "/login", map[string]string{"email": "admin@example.com", "password": "wrong-one"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.json(http.MethodPost, "/login", map[string]string{"email": "not-an-email", "password": "secret123"}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.json(http.MethodGet, "/me", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[model.MeResponse](t, rec)
	assert.Equal(t, "admin@example.com", me.Email)
	assert.Equal(t, "uid-admin@example.com", me.UserID)

	rec = api.json(http.MethodGet, "/me", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvitationRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodPost, "/invitations", map[string]string{
		"name": "Alice", "status": "attending", "message": "Congrats!",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.CreatedResponse](t, rec)
	require.NotEmpty(t, created.ID)

	rec = api.json(http.MethodPost, "/invitations", map[string]string{"name": "Bob", "status": "maybe", "message": "hi"}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Updating requires both status and message.
	rec = api.json(http.MethodPut, "/invitations/"+created.ID, map[string]string{"status": "declined"}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "message", body.Errors[0].Field)

	rec = api.json(http.MethodGet, "/invitations", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]model.Invitation](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "attending", list[0].Status)
	assert.Equal(t, "Congrats!", list[0].Message)
	assert.NotNil(t, list[0].CreatedAt)

	rec = api.json(http.MethodPut, "/invitations/"+created.ID, map[string]string{"status": "declined", "message": "Sorry"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.json(http.MethodPut, "/invitations/"+created.ID, map[string]string{"status": "declined", "message": "Sorry"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Invitation updated successfully", decode[model.MessageResponse](t, rec).Message)

	rec = api.json(http.MethodPut, "/invitations/missing", map[string]string{"status": "declined", "message": "Sorry"}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.json(http.MethodDelete, "/invitations/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Invitation deleted successfully", decode[model.MessageResponse](t, rec).Message)

	rec = api.json(http.MethodDelete, "/invitations/"+created.ID, nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmptyListIsArray(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodGet, "/schedules/reception", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGalleryRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.upload("/uploadGallery", nil, "photo.png", testutil.PNG)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[model.GalleryItem](t, rec)
	assert.Equal(t, "https://cdn.example.com/wedding/gallery/asset-1", item.ImageURL)

	rec = api.upload("/uploadGallery", nil, "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded.", decode[errs.HTTPError](t, rec).Message)

	rec = api.upload("/uploadGallery", nil, "notes.png", []byte("just some text"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, api.ts.Assets.UploadCount())

	rec = api.json(http.MethodGet, "/getGallery", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.GalleryItem](t, rec), 1)

	rec = api.json(http.MethodDelete, "/deleteGallery/"+item.ID, nil, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"wedding/gallery/asset-1"}, api.ts.Assets.Deleted)

	rec = api.json(http.MethodGet, "/getGallery", nil, false)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestMediaUpdateRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.upload("/gifts", map[string]string{"linkUrl": "https://shop.example.com/mixer", "label": "Mixer"}, "mixer.png", testutil.PNG)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	gift := decode[model.MediaAsset](t, rec)

	rec = api.json(http.MethodPut, "/gifts/"+gift.ID, map[string]string{"label": "Stand mixer"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.json(http.MethodPut, "/gifts/"+gift.ID, map[string]string{"linkUrl": "not a url"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.json(http.MethodGet, "/gifts", nil, false)
	gifts := decode[[]model.MediaAsset](t, rec)
	require.Len(t, gifts, 1)
	assert.Equal(t, "Stand mixer", gifts[0].Label)
	assert.Equal(t, "https://shop.example.com/mixer", gifts[0].LinkURL)
}

func TestGuestAndTransferRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodPost, "/tamu", map[string]string{"guestName": "Rina"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.json(http.MethodGet, "/tamu", nil, false)
	guests := decode[[]model.Guest](t, rec)
	require.Len(t, guests, 1)
	assert.Equal(t, "https://wedding.example.com/?to=Rina", guests[0].ReferralURL)

	rec = api.upload("/banks", map[string]string{"bankName": "BCA"}, "bca.png", testutil.PNG)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bank := decode[model.BankAccount](t, rec)

	rec = api.json(http.MethodPost, "/transfers/primary", map[string]string{
		"accountHolderName": "Rina", "accountNumber": "123", "bankAccountRef": bank.ID,
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.json(http.MethodGet, "/transfers/primary", nil, false)
	targets := decode[[]model.TransferTarget](t, rec)
	require.Len(t, targets, 1)
	require.NotNil(t, targets[0].Bank)
	assert.Equal(t, "BCA", targets[0].Bank.BankName)

	rec = api.json(http.MethodGet, "/transfers/secondary", nil, false)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/tamu"},
		{http.MethodPost, "/schedules/ceremony"},
		{http.MethodPut, "/maps/reception/abc"},
		{http.MethodDelete, "/couple/bride/abc"},
		{http.MethodPost, "/stories/third"},
		{http.MethodPost, "/cover"},
		{http.MethodPost, "/audio"},
		{http.MethodPost, "/uploadGallery"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := api.json(p.method, p.path, map[string]string{}, false)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodGet, "/status", nil, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"store"`)

	rec = api.json(http.MethodGet, "/nope", nil, false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
