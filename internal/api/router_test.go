package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Marga-Ghale/ora-group-views/internal/api/handlers"
	"github.com/Marga-Ghale/ora-group-views/internal/models"
	"github.com/Marga-Ghale/ora-group-views/internal/service"
	"github.com/Marga-Ghale/ora-group-views/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	got     []service.DetailsQuery
	details *models.DisplayGroupDetails
	err     error
}

func (s *recordingService) GetDetails(ctx context.Context, q service.DetailsQuery) (*models.DisplayGroupDetails, error) {
	s.got = append(s.got, q)
	return s.details, s.err
}

func newTestRouter(svc service.GroupDetailsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewHandlers(&service.Services{GroupDetails: svc})
	return NewRouter(RouterConfig{
		AllowedOrigins: []string{"https://groups.example"},
		JWTSecret:      "secret",
		Health:         func() gin.H { return gin.H{"database": "connected"} },
	}, h)
}

func get(r http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGroupDetailsOK(t *testing.T) {
	next := int64(5)
	svc := &recordingService{details: &models.DisplayGroupDetails{
		Group:           models.GroupInfo{Name: "design-team", Description: "Design", Typ: types.GroupOpen},
		Curators:        models.MemberPage{Next: &next, Members: []models.DisplayMember{}},
		Members:         models.MemberPage{Members: []models.DisplayMember{}},
		MemberCount:     15,
		InvitationCount: 2,
		RenewalCount:    1,
	}}

	w := get(newTestRouter(svc), "/views/design-team/details", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"name": "design-team", "description": "Design", "typ": "open"}, body["group"])
	assert.EqualValues(t, 15, body["member_count"])
	assert.EqualValues(t, 2, body["invitation_count"])
	assert.EqualValues(t, 1, body["renewal_count"])
	assert.EqualValues(t, 5, body["curators"].(map[string]interface{})["next"])

	require.Len(t, svc.got, 1)
	assert.Equal(t, service.DetailsQuery{GroupName: "design-team", Scope: types.ScopePublic}, svc.got[0])
}

func TestGroupDetailsQueryParams(t *testing.T) {
	svc := &recordingService{details: &models.DisplayGroupDetails{}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "scope": "ndaed"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	w := get(newTestRouter(svc), "/views/design-team/details?next=10&size=5&members_next=20",
		http.Header{"Authorization": {"Bearer " + token}})
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, svc.got, 1)
	q := svc.got[0]
	assert.Equal(t, types.ScopeNdaed, q.Scope)
	assert.EqualValues(t, 5, q.PageSize)
	require.NotNil(t, q.Next)
	assert.EqualValues(t, 10, *q.Next)
	require.NotNil(t, q.MembersNext)
	assert.EqualValues(t, 20, *q.MembersNext)
}

func TestGroupDetailsBadQuery(t *testing.T) {
	tests := []struct {
		target string
		body   string
	}{
		{"/views/g/details?next=abc", `{"error":"Invalid query parameters"}`},
		{"/views/g/details?size=ten", `{"error":"Invalid query parameters"}`},
		{"/views/g/details?members_next=1.5", `{"error":"Invalid query parameters"}`},
		{"/views/g/details?size=0", `{"error":"size must be positive"}`},
		{"/views/g/details?size=-3", `{"error":"size must be positive"}`},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			svc := &recordingService{}
			w := get(newTestRouter(svc), tt.target, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			assert.NotContains(t, w.Body.String(), "strconv")
			assert.Empty(t, svc.got)
		})
	}
}

func TestGroupDetailsErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest},
		{"store failure", &service.StoreFailure{Step: "curators", Err: errors.New("timeout")}, http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newTestRouter(&recordingService{err: tt.err}), "/views/g/details", nil)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestViewsCORSPreflight(t *testing.T) {
	r := newTestRouter(&recordingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/views/g/details", nil)
	req.Header.Set("Origin", "https://groups.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://groups.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
}

func TestHealth(t *testing.T) {
	w := get(newTestRouter(&recordingService{}), "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"connected"`)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestViewsCORSConfig(t *testing.T) {
	assert.True(t, viewsCORS(nil).AllowAllOrigins)
	assert.True(t, viewsCORS([]string{"https://a", "*"}).AllowAllOrigins)

	c := viewsCORS([]string{"https://a"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://a"}, c.AllowOrigins)
}
