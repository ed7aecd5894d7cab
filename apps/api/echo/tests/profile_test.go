package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
)

func TestProfileRetrieve(t *testing.T) {
	env := setup(t)
	stuToken, stu := register(t, env, "rahul@iitr.ac.in", user.RoleStudent)
	facToken, _ := register(t, env, "mehta@iitr.ac.in", user.RoleFaculty)

	req, rec := newAuthRequest(http.MethodGet, "/v1/profile", stuToken)
	env.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var usr user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
	assert.Equal(t, stu.ID, usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.Empty(t, usr.Department)

	req, rec = newAuthRequest(http.MethodGet, "/v1/profile", facToken)
	env.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
	assert.Equal(t, user.Department, usr.Department)
}

func TestProfileUpdateStudent(t *testing.T) {
	env := setup(t)
	stuToken, _ := register(t, env, "rahul@iitr.ac.in", user.RoleStudent)

	body := func(name, year, msg string) []byte {
		return marchallObj(t, user.StudentProfile{Name: name, Year: year, CustomMessage: msg})
	}

	tests := []httpTest{
		{
			name: "missing name", body: body("", "3rd Year", "Hi"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "name is a required field"}),
		},
		{
			name: "bad year", body: body("Rahul", "6th Year", "Hi"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"year": "Please select your year"}),
		},
		{
			name: "message too long", body: body("Rahul", "3rd Year", strings.Repeat("x", 501)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"customMessage": "customMessage must be a maximum of 500 characters in length"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, "/v1/profile", stuToken, tt.body)
			env.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("ok", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/profile", stuToken, body("Rahul Sharma", "3rd Year", "Interested in DSP."))
		env.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var usr user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
		assert.Equal(t, "Rahul Sharma", usr.Name)
		assert.Equal(t, "3rd Year", usr.Year)
	})
}

func TestProfileUpdateFaculty(t *testing.T) {
	env := setup(t)
	facToken, _ := register(t, env, "mehta@iitr.ac.in", user.RoleFaculty)

	t.Run("bad designation", func(t *testing.T) {
		data := marchallObj(t, user.FacultyProfile{FacultyName: "Dr. Mehta", Designation: "Dean"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/profile", facToken, data)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"designation": "Please select your designation"}),
		}, rec)
	})

	t.Run("ok", func(t *testing.T) {
		data := marchallObj(t, user.FacultyProfile{
			FacultyName:    "Dr. Mehta",
			Designation:    "Professor",
			OfficeLocation: "ECE-214",
		})
		req, rec := newAuthRequest(http.MethodPut, "/v1/profile", facToken, data)
		env.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var usr user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
		assert.Equal(t, "Dr. Mehta", usr.FacultyName)
		assert.Equal(t, "Professor", usr.Designation)
		assert.Equal(t, user.Department, usr.Department)
	})
}

func TestProfileResumeUpload(t *testing.T) {
	env := setup(t)
	stuToken, _ := register(t, env, "rahul@iitr.ac.in", user.RoleStudent)
	facToken, _ := register(t, env, "mehta@iitr.ac.in", user.RoleFaculty)

	t.Run("faculty forbidden", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/profile/resume", facToken, "resume", "cv.pdf", "application/pdf", []byte("%PDF-1.4"))
		env.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not a pdf", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/profile/resume", stuToken, "resume", "cv.docx", "application/msword", []byte("word"))
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"resume": "Please upload a PDF file"}),
		}, rec)
	})

	t.Run("no file", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/profile/resume", stuToken)
		env.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"resume": "No file selected"}),
		}, rec)
	})

	t.Run("ok", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/profile/resume", stuToken, "resume", "cv.pdf", "application/pdf", []byte("%PDF-1.4"))
		env.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var usr user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usr))
		assert.Equal(t, "cv.pdf", usr.ResumeName)
		assert.Contains(t, usr.ResumeURL, "resumes/")
	})
}
