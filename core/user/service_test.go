package user_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
	"github.com/rohitbokare05/Project-Connect-IITR/core/user"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/blob"
	inmemblob "github.com/rohitbokare05/Project-Connect-IITR/storage/blob/inmem"
	inmemdb "github.com/rohitbokare05/Project-Connect-IITR/storage/docstore/inmem"
	"github.com/rohitbokare05/Project-Connect-IITR/storage/records"
)

func setup(t *testing.T) (*user.Service, user.Repository, blob.Store) {
	t.Helper()
	store := inmemdb.Open()
	users := records.NewUserRepository(store)
	blobs := inmemblob.Open("http://localhost:8000/uploads")
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	return user.NewService(users, blobs, logger), users, blobs
}

func createUser(t *testing.T, users user.Repository, id, email string, role user.Role) user.User {
	t.Helper()
	usr := user.New(id, email, role, time.Now().UTC())
	require.NoError(t, users.Create(context.Background(), usr))
	return usr
}

func pdf(name string, size int64) user.ResumeFile {
	return user.ResumeFile{
		Filename:    name,
		ContentType: "application/pdf",
		Size:        size,
		Content:     bytes.NewReader(bytes.Repeat([]byte("x"), int(size))),
	}
}

func TestProfileRoleMismatch(t *testing.T) {
	svc, users, _ := setup(t)
	ctx := context.Background()
	createUser(t, users, "stu1", "rahul@iitr.ac.in", user.RoleStudent)

	// the right role resolves
	usr, err := svc.Profile(ctx, "stu1", user.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "rahul@iitr.ac.in", usr.Email)

	// the wrong role reads as missing
	_, err = svc.Profile(ctx, "stu1", user.RoleFaculty)
	assert.Equal(t, user.ErrNotFound, err)

	_, err = svc.Profile(ctx, "ghost", user.RoleStudent)
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))
}

func TestUpdateStudentProfile(t *testing.T) {
	svc, users, _ := setup(t)
	ctx := context.Background()
	createUser(t, users, "stu1", "rahul@iitr.ac.in", user.RoleStudent)

	usr, err := svc.UpdateStudentProfile(ctx, "stu1", user.StudentProfile{
		Name:          "Rahul Sharma",
		Year:          "3rd Year",
		CustomMessage: "Interested in signal processing.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rahul Sharma", usr.Name)
	assert.Equal(t, "3rd Year", usr.Year)
	assert.Equal(t, "rahul@iitr.ac.in", usr.Email) // untouched

	// unknown year is rejected
	_, err = svc.UpdateStudentProfile(ctx, "stu1", user.StudentProfile{
		Name:          "Rahul Sharma",
		Year:          "6th Year",
		CustomMessage: "msg",
	})
	require.Error(t, err)

	// a faculty record cannot be edited through the student form
	createUser(t, users, "fac1", "mehta@iitr.ac.in", user.RoleFaculty)
	_, err = svc.UpdateStudentProfile(ctx, "fac1", user.StudentProfile{
		Name: "X", Year: "1st Year", CustomMessage: "msg",
	})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestUpdateFacultyProfile(t *testing.T) {
	svc, users, _ := setup(t)
	ctx := context.Background()
	createUser(t, users, "fac1", "mehta@iitr.ac.in", user.RoleFaculty)

	usr, err := svc.UpdateFacultyProfile(ctx, "fac1", user.FacultyProfile{
		FacultyName:    "Dr. Mehta",
		Designation:    "Professor",
		OfficeLocation: "ECE-214",
		Phone:          "01332-285000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Mehta", usr.FacultyName)
	assert.Equal(t, user.Department, usr.Department) // fixed

	// unknown designation is rejected
	_, err = svc.UpdateFacultyProfile(ctx, "fac1", user.FacultyProfile{
		FacultyName: "Dr. Mehta",
		Designation: "Dean",
	})
	require.Error(t, err)
}

func TestSaveResume(t *testing.T) {
	svc, users, blobs := setup(t)
	ctx := context.Background()
	createUser(t, users, "stu1", "rahul@iitr.ac.in", user.RoleStudent)

	usr, err := svc.SaveResume(ctx, "stu1", pdf("cv.pdf", 1024))
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", usr.ResumeName)
	require.NotEmpty(t, usr.ResumeURL)

	// the object really is in the blob store
	path := usr.ResumeURL[len("http://localhost:8000/uploads/"):]
	data, ok := inmemblob.Object(blobs, path)
	require.True(t, ok)
	assert.Len(t, data, 1024)

	// faculty cannot upload resumes
	createUser(t, users, "fac1", "mehta@iitr.ac.in", user.RoleFaculty)
	_, err = svc.SaveResume(ctx, "fac1", pdf("cv.pdf", 1024))
	assert.Equal(t, user.ErrNotFound, err)
}

func TestSaveResumeUploadFailureKeepsRecord(t *testing.T) {
	store := inmemdb.Open()
	users := records.NewUserRepository(store)
	logger := core.NewStdLogger(log.New(io.Discard, "", 0))
	svc := user.NewService(users, failingBlobStore{}, logger)
	ctx := context.Background()

	usr := user.New("stu1", "rahul@iitr.ac.in", user.RoleStudent, time.Now().UTC())
	usr.ResumeURL = "http://localhost:8000/uploads/resumes/stu1/1_old.pdf"
	usr.ResumeName = "old.pdf"
	require.NoError(t, users.Create(ctx, usr))

	_, err := svc.SaveResume(ctx, "stu1", pdf("new.pdf", 1024))
	require.Error(t, err)

	// the previous resume fields survive the failed attempt
	stored, err := users.Get(ctx, "stu1")
	require.NoError(t, err)
	assert.Equal(t, "old.pdf", stored.ResumeName)
	assert.Equal(t, usr.ResumeURL, stored.ResumeURL)
}

type failingBlobStore struct{}

func (failingBlobStore) Upload(context.Context, string, io.Reader) (string, error) {
	return "", errors.New("upload failed")
}

func (failingBlobStore) Delete(context.Context, string) error { return nil }
