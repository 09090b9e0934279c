package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	appModeration "github.com/TroHub/ListingGuard/pkg/app/moderation"
	appModels "github.com/TroHub/ListingGuard/pkg/app/models"
	"github.com/TroHub/ListingGuard/pkg/app/thresholds"
	"github.com/TroHub/ListingGuard/pkg/domain"
	domainModeration "github.com/TroHub/ListingGuard/pkg/domain/moderation"
	domainMocks "github.com/TroHub/ListingGuard/pkg/domain/moderation/mocks"
	infraModels "github.com/TroHub/ListingGuard/pkg/infra/models"
	modelMocks "github.com/TroHub/ListingGuard/pkg/infra/models/mocks"
	"github.com/TroHub/ListingGuard/pkg/moderation"
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const studioJSON = `{
	"_id": "studio-1",
	"title": "Phòng trọ quận 1 đẹp",
	"description": "Phòng sạch sẽ, thoáng mát. Phòng sạch sẽ, thoáng mát. Phòng sạch sẽ, thoáng mát. ",
	"price": 3000000,
	"area": 25,
	"bedrooms": 0,
	"bathrooms": 1,
	"propertyType": "phong-tro",
	"address": {"street": "12 Lê Lợi", "ward": "Bến Nghé", "district": "Quận 1", "city": "TP. Hồ Chí Minh"},
	"location": {"type": "Point", "coordinates": [106.70, 10.77]},
	"amenities": {"wifi": true, "ac": true, "parking": true, "kitchen": true, "water": true, "laundry": true, "balcony": true, "security": true},
	"images": ["1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"]
}`

type testStack struct {
	app    *fiber.App
	engine *moderation.Engine
	repo   *domainMocks.Repository
	loader *modelMocks.Loader
}

func newStack(t *testing.T) *testStack {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	th, err := decision.NewThresholds(domainModeration.DefaultThresholds)
	require.NoError(t, err)
	p := predictor.New(logger, predictor.Config{})
	engine := moderation.NewEngine(logger, p, th, moderation.WithWorkers(2))

	repo := new(domainMocks.Repository)
	loader := new(modelMocks.Loader)
	service := appModeration.NewService(logger, engine, nil)

	app := fiber.New()
	app.Get("/", NewGetRootHandler().Handle)
	app.Get("/health", NewHealthHandler().Handle)
	app.Get("/api/health", NewGetHealthHandler(p, engine).Handle)
	app.Get("/version", NewGetVersionHandler(logger).Handle)
	app.Post("/api/moderate", NewModerateHandler(logger, service).Handle)
	app.Post("/api/moderate/batch", NewBatchModerateHandler(logger, service, 3).Handle)
	app.Get("/api/moderations/:listing_id", NewGetModerationHandler(logger, appModeration.NewFinder(repo, logger)).Handle)
	app.Get("/api/config", NewGetConfigHandler(p, engine).Handle)
	app.Post("/api/config", NewUpdateConfigHandler(logger, thresholds.NewUpdater(logger, engine, nil, nil, "test")).Handle)
	app.Post("/api/models/reload", NewReloadModelsHandler(logger, appModels.NewReloader(logger, loader, p)).Handle)

	return &testStack{app: app, engine: engine, repo: repo, loader: loader}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestModerateHandler_AutoApproves(t *testing.T) {
	s := newStack(t)

	code, body := doJSON(t, s.app, fiber.MethodPost, "/api/moderate", `{"property":`+studioJSON+`}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "studio-1", body["listing_id"])
	assert.Equal(t, string(domainModeration.AutoApproved), body["decision"])
	assert.Equal(t, 0.902, body["overall_score"])
	assert.Equal(t, []any{}, body["suggestions"])
}

func TestModerateHandler_BadRequests(t *testing.T) {
	s := newStack(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing property", body: `{}`, want: "missing property"},
		{name: "null property", body: `{"property": null}`, want: "missing property"},
		{name: "property is a string", body: `{"property": "hello"}`, want: "JSON object"},
		{name: "wrong field type", body: `{"property": {"price": "cheap"}}`, want: "malformed listing"},
		{name: "not json", body: `{"property":`, want: "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, s.app, fiber.MethodPost, "/api/moderate", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, code)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

func TestBatchModerateHandler(t *testing.T) {
	s := newStack(t)

	code, body := doJSON(t, s.app, fiber.MethodPost, "/api/moderate/batch",
		`{"properties":[`+studioJSON+`, "oops", {"_id": 42, "price": "x"}]}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(1), body["successful"])
	assert.Equal(t, float64(2), body["failed"])

	results := body["results"].([]any)
	require.Len(t, results, 3)
	assert.Equal(t, true, results[0].(map[string]any)["success"])
	assert.Equal(t, domainModeration.UnknownListingID, results[1].(map[string]any)["property_id"])
	assert.Equal(t, "42", results[2].(map[string]any)["property_id"])
}

func TestBatchModerateHandler_BadRequests(t *testing.T) {
	s := newStack(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing", body: `{}`, want: "missing properties"},
		{name: "not an array", body: `{"properties": {"a": 1}}`, want: "must be an array"},
		{name: "over the limit", body: `{"properties": [{}, {}, {}, {}]}`, want: "exceeds the limit of 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, s.app, fiber.MethodPost, "/api/moderate/batch", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, code)
			assert.Contains(t, body["error"], tt.want)
		})
	}
}

func TestUpdateConfigHandler(t *testing.T) {
	s := newStack(t)

	code, body := doJSON(t, s.app, fiber.MethodPost, "/api/config", `{"auto_approve_threshold": "0.9"}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, map[string]any{"auto_approve": 0.9, "reject": 0.6}, body["thresholds"])
	assert.Equal(t, 0.9, s.engine.Thresholds().AutoApprove)

	tests := []struct {
		name string
		body string
	}{
		{name: "out of range", body: `{"reject_threshold": 1.5}`},
		{name: "negative", body: `{"auto_approve_threshold": -0.1}`},
		{name: "inverted", body: `{"auto_approve_threshold": 0.3}`},
		{name: "not a number", body: `{"reject_threshold": "low"}`},
		{name: "nothing to change", body: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := doJSON(t, s.app, fiber.MethodPost, "/api/config", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, code)
		})
	}
	assert.Equal(t, domainModeration.Thresholds{AutoApprove: 0.9, Reject: 0.6}, s.engine.Thresholds())
}

func TestGetConfigAndHealthHandlers(t *testing.T) {
	s := newStack(t)

	code, body := doJSON(t, s.app, fiber.MethodGet, "/api/config", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, map[string]any{"rules": 0.6, "ml": 0.4}, body["weights"])
	assert.Equal(t, map[string]any{"auto_approve": 0.85, "reject": 0.6}, body["thresholds"])
	assert.Equal(t, false, body["models_status"].(map[string]any)["price_model_loaded"])

	code, body = doJSON(t, s.app, fiber.MethodGet, "/api/health", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]any{"price_model": false, "anomaly_model": false, "scaler": false}, body["models_loaded"])
	assert.Equal(t, "absent", body["model_states"].(map[string]any)["price_model"])

	code, body = doJSON(t, s.app, fiber.MethodGet, "/", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "running", body["status"])

	code, body = doJSON(t, s.app, fiber.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, body = doJSON(t, s.app, fiber.MethodGet, "/version", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, "go_version")
}

func TestGetModerationHandler(t *testing.T) {
	s := newStack(t)

	s.repo.On("FindLatestByListingID", mock.Anything, "L-1").
		Return(&domainModeration.Record{ListingID: "L-1", Decision: domainModeration.PendingReview}, nil).Once()
	s.repo.On("FindLatestByListingID", mock.Anything, "L-404").
		Return(nil, domain.NewNotFoundError(domain.EntityModerationResult, "L-404")).Once()
	s.repo.On("FindLatestByListingID", mock.Anything, "L-500").
		Return(nil, errors.New("connection reset")).Once()

	code, body := doJSON(t, s.app, fiber.MethodGet, "/api/moderations/L-1", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "pending_review", body["decision"])

	code, body = doJSON(t, s.app, fiber.MethodGet, "/api/moderations/L-404", "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.True(t, strings.Contains(body["error"].(string), "not found"))

	code, _ = doJSON(t, s.app, fiber.MethodGet, "/api/moderations/L-500", "")
	assert.Equal(t, fiber.StatusInternalServerError, code)
}

func TestReloadModelsHandler(t *testing.T) {
	s := newStack(t)
	s.loader.On("Dir").Return("/models")
	s.loader.On("Load", mock.Anything).
		Return(nil, infraModels.NewArtifactError(infraModels.ScalerFile, errors.New("bad json"))).Once()

	code, body := doJSON(t, s.app, fiber.MethodPost, "/api/models/reload", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, body["error"], "scaler")

	s.loader.On("Load", mock.Anything).Return(&predictor.ModelSet{}, nil).Once()
	code, body = doJSON(t, s.app, fiber.MethodPost, "/api/models/reload", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "absent", body["price_model"])
}
