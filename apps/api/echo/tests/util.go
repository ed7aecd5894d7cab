package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/textproto"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/rohitbokare05/Project-Connect-IITR/apps/api/echo"
	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/auth"
	"github.com/rohitbokare05/Project-Connect-IITR/core/project"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
	emailsvc "github.com/rohitbokare05/Project-Connect-IITR/services/email"
	identitysvc "github.com/rohitbokare05/Project-Connect-IITR/services/identity"
	inmemblob "github.com/rohitbokare05/Project-Connect-IITR/storage/blob/inmem"
	inmemdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/inmem"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/records"
)

const (
	jwtExpirationDelta        = 10 * time.Minute
	jwtRefreshExpirationDelta = 4 * time.Hour
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testEnv struct {
	server  Server
	usrRepo user.Repository
	mailSvc core.EmailService
}

func setup(t *testing.T) testEnv {
	t.Helper()

	conf := &core.Config{
		TestMode:         true,
		AppName:          "ECE Research Connect",
		Env:              "TEST",
		SecretKey:        "secret",
		EmailDomain:      "@iitr.ac.in",
		DefaultFromEmail: mail.Address{Address: "noreply@localhost"},
	}
	conf.Server.Addr = ":0"
	conf.Server.JWTExpirationDelta = jwtExpirationDelta
	conf.Server.JWTRefreshExpirationDelta = jwtRefreshExpirationDelta

	store := inmemdb.Open()
	provider := identitysvc.NewLocalProvider(store)
	usrRepo := records.NewUserRepository(store)
	projRepo := records.NewProjectRepository(store)
	blobs := inmemblob.Open("http://localhost:8000/uploads")
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		AuthSvc:    auth.NewService(provider, usrRepo, mailSvc, conf, logger),
		UserSvc:    user.NewService(usrRepo, blobs, logger),
		ProjectSvc: project.NewService(projRepo, usrRepo, mailSvc, logger),
		Users:      usrRepo,
	})
	return testEnv{server: server, usrRepo: usrRepo, mailSvc: mailSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func newUploadRequest(t *testing.T, path, token, field, filename, contentType string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if _, err = part.Write(content); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

// register creates an account through the API and returns the issued token
// and user.
func register(t *testing.T, env testEnv, email string, role user.Role) (string, user.User) {
	t.Helper()
	data := marchallObj(t, auth.Registration{
		Email:           email,
		Password:        "secret123",
		PasswordConfirm: "secret123",
		Role:            role,
	})
	req, rec := newRequest(http.MethodPost, "/v1/auth/register", data)
	env.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register() failed: code = %v, body = %v", rec.Code, rec.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("register() failed: %v", err)
	}
	return resp.Token, resp.User
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
