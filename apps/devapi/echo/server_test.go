package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/educonnect/apps/shared"
	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/extension"
	"github.com/trezcool/educonnect/core/feewaiver"
	"github.com/trezcool/educonnect/core/material"
	inmemdb "github.com/trezcool/educonnect/storage/inmem"
	"github.com/trezcool/educonnect/tests"
)

var (
	testConf = &core.Config{
		AppName:  "EduConnect",
		TestMode: true,
		DevAPI: core.DevAPIConfig{
			SecretKey:          "test-secret",
			JWTExpirationDelta: time.Hour,
		},
	}
	testTeacher = Teacher{ID: "t1", Name: "Ada", Email: "ada@test.cd"}
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func setup(t *testing.T) (*Server, *inmemdb.DB, string) {
	db := inmemdb.Open()
	require.NoError(t, db.Seed(testTeacher.ID))

	server := NewServer(ServerDeps{
		Conf:      testConf,
		Logger:    new(testutil.Logger),
		DB:        db,
		Validator: shared.NewValidator(),
	})
	token, err := GenerateToken(testConf, testTeacher)
	require.NoError(t, err)
	return server, db, token
}

func newAuthRequest(method, path, token string, body []byte, contentType ...string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	ct := core.MIMEApplicationJSON
	if len(contentType) > 0 {
		ct = contentType[0]
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", ct)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func marshal(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	server, _, token := setup(t)

	expired, err := GenerateToken(&core.Config{DevAPI: core.DevAPIConfig{SecretKey: "test-secret", JWTExpirationDelta: -time.Minute}}, testTeacher)
	require.NoError(t, err)
	forged, err := GenerateToken(&core.Config{DevAPI: core.DevAPIConfig{SecretKey: "other", JWTExpirationDelta: time.Hour}}, testTeacher)
	require.NoError(t, err)

	tests := []httpTest{
		{name: "home is public", method: http.MethodGet, path: "/", wantCode: http.StatusOK},
		{name: "missing token", method: http.MethodGet, path: "/api/teacher/classes", wantCode: http.StatusUnauthorized, wantData: []byte(`{"message": "missing or malformed jwt"}`)},
		{name: "expired token", method: http.MethodGet, path: "/api/teacher/classes", token: expired, wantCode: http.StatusUnauthorized, wantData: []byte(`{"message": "invalid or expired jwt"}`)},
		{name: "forged token", method: http.MethodGet, path: "/api/teacher/classes", token: forged, wantCode: http.StatusUnauthorized},
		{name: "valid token", method: http.MethodGet, path: "/api/teacher/classes", token: token, wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestClassAPI(t *testing.T) {
	server, db, token := setup(t)
	math := db.QueryClasses(testTeacher.ID)[0]

	tests := []httpTest{
		{
			name:     "query",
			method:   http.MethodGet,
			path:     "/api/teacher/classes",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshal(t, db.QueryClasses(testTeacher.ID)),
		},
		{
			name:     "create invalid",
			method:   http.MethodPost,
			path:     "/api/classes/create",
			body:     []byte(`{"subject": " ", "monthlyFee": 50}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"message": "Subject is required", "errors": {"subject": "Subject is required"}}`),
		},
		{
			name:     "create fee too high",
			method:   http.MethodPost,
			path:     "/api/classes/create",
			body:     []byte(`{"subject": "Chemistry", "monthlyFee": 10001}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"message": "Monthly fee cannot exceed $10,000", "errors": {"monthlyFee": "Monthly fee cannot exceed $10,000"}}`),
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/api/classes/nope",
			body:     []byte(`{"subject": "Chemistry", "monthlyFee": 10}`),
			token:    token,
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"message": "not found"}`),
		},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     "/api/classes/" + math.ID,
			body:     []byte(`{"subject": "Algebra", "monthlyFee": 55.5, "description": ""}`),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshal(t, class.Class{ID: math.ID, TeacherID: testTeacher.ID, Subject: "Algebra", MonthlyFee: 55.5, IsActive: true, StudentsCount: math.StudentsCount}),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/api/classes/" + math.ID,
			token:    token,
			wantCode: http.StatusOK,
			wantData: []byte(`{"message": "Class deleted successfully"}`),
		},
		{
			name:     "delete again",
			method:   http.MethodDelete,
			path:     "/api/classes/" + math.ID,
			token:    token,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestCreateClass_multipart(t *testing.T) {
	server, _, token := setup(t)

	nc := class.NewClass{
		Subject:    "Chemistry",
		MonthlyFee: "42",
		CoverPhoto: core.NewAttachment("cover.png", "image/png", []byte("\x89PNG\x0D\x0A\x1A\x0Acontent")),
	}
	p := nc.Payload()
	body, ct, err := p.Encode()
	require.NoError(t, err)

	req, rec := newAuthRequest(http.MethodPost, "/api/classes/create", token, body, ct)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got class.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Chemistry", got.Subject)
	assert.Equal(t, 42.0, got.MonthlyFee)
	require.NotEmpty(t, got.CoverPhoto)

	// uploads are served without a token
	req, rec = newAuthRequest(http.MethodGet, got.CoverPhoto, "", nil)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	t.Run("rejected cover photo", func(t *testing.T) {
		nc.CoverPhoto = core.NewAttachment("cover.gif", "image/gif", []byte("GIF89a"))
		p := nc.Payload()
		body, ct, err := p.Encode()
		require.NoError(t, err)

		req, rec := newAuthRequest(http.MethodPost, "/api/classes/create", token, body, ct)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"message": "Cover photo must be a JPEG or PNG file", "errors": {"coverPhoto": "Cover photo must be a JPEG or PNG file"}}`),
		}, rec)
	})
}

func TestUploadMaterial(t *testing.T) {
	server, db, token := setup(t)
	classID := db.QueryClasses(testTeacher.ID)[0].ID

	tests := []struct {
		name     string
		draft    material.NewMaterial
		wantCode int
		wantType string
	}{
		{
			name:     "pdf",
			draft:    material.NewMaterial{ClassID: classID, Title: "Intro", LessonName: "Lesson 2", Type: material.TypePDF, File: core.NewAttachment("intro.pdf", "application/pdf", []byte("%PDF-1.4")), UploadDate: "2025-09-01"},
			wantCode: http.StatusCreated,
			wantType: material.TypePDF,
		},
		{
			name:     "link",
			draft:    material.NewMaterial{ClassID: classID, Title: "Video", LessonName: "Lesson 2", Type: material.TypeLink, Content: "https://example.com/v", UploadDate: "2025-09-01"},
			wantCode: http.StatusCreated,
			wantType: material.TypeLink,
		},
		{
			name:     "pdf without file",
			draft:    material.NewMaterial{ClassID: classID, Title: "Intro", LessonName: "Lesson 2", Type: material.TypePDF, UploadDate: "2025-09-01"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown class",
			draft:    material.NewMaterial{ClassID: "nope", Title: "Intro", LessonName: "Lesson 2", Type: material.TypeLink, Content: "https://example.com", UploadDate: "2025-09-01"},
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.draft.Payload()
			body, ct, err := p.Encode()
			require.NoError(t, err)

			req, rec := newAuthRequest(http.MethodPost, tt.draft.Endpoint().Path, token, body, ct)
			server.ServeHTTP(rec, req)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusCreated {
				return
			}

			var res material.UploadResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal(t, tt.wantType, res.Material.Type)
			assert.Equal(t, classID, res.Material.ClassID)
			assert.NotEmpty(t, res.Material.Content)
		})
	}
}

func TestFeeWaiverAPI(t *testing.T) {
	server, db, token := setup(t)
	waiver := db.QueryFeeWaivers(testTeacher.ID)[0]

	approved := waiver
	approved.Status = feewaiver.StatusApproved
	approved.TeacherComments = "ok"
	approved.DiscountPercentage = 50

	tests := []httpTest{
		{
			name:     "query",
			method:   http.MethodGet,
			path:     "/api/auth/teacher/fee-waiver-requests",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshal(t, db.QueryFeeWaivers(testTeacher.ID)),
		},
		{
			name:     "invalid status",
			method:   http.MethodPut,
			path:     "/api/auth/teacher/fee-waiver/" + waiver.ID + "/status",
			body:     []byte(`{"status": "Pending"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"message": "Status must be Approved or Rejected", "errors": {"status": "Status must be Approved or Rejected"}}`),
		},
		{
			name:     "approve",
			method:   http.MethodPut,
			path:     "/api/auth/teacher/fee-waiver/" + waiver.ID + "/status",
			body:     []byte(`{"status": "Approved", "teacherComments": "ok", "discountPercentage": 50}`),
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshal(t, feewaiver.DecideResult{FeeWaiver: approved}),
		},
		{
			name:     "unknown",
			method:   http.MethodPut,
			path:     "/api/auth/teacher/fee-waiver/nope/status",
			body:     []byte(`{"status": "Rejected"}`),
			token:    token,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestExtensionAPI(t *testing.T) {
	server, db, token := setup(t)
	req0 := db.QueryExtensions(testTeacher.ID)[0]

	tests := []httpTest{
		{
			name:     "query",
			method:   http.MethodGet,
			path:     "/api/classes/extension/requests",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marshal(t, db.QueryExtensions(testTeacher.ID)),
		},
		{
			name:     "missing ids",
			method:   http.MethodPost,
			path:     "/api/classes/extension/handle",
			body:     []byte(`{"status": "approved"}`),
			token:    token,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "approve",
			method:   http.MethodPost,
			path:     "/api/classes/extension/handle",
			body:     marshal(t, extension.Decision{MaterialID: req0.MaterialID, RequestID: req0.RequestID, Status: extension.StatusApproved}),
			token:    token,
			wantCode: http.StatusOK,
			wantData: []byte(`{"message": "Request approved"}`),
		},
		{
			name:     "wrong material",
			method:   http.MethodPost,
			path:     "/api/classes/extension/handle",
			body:     marshal(t, extension.Decision{MaterialID: "nope", RequestID: req0.RequestID, Status: extension.StatusRejected}),
			token:    token,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
