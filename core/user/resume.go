package user

import (
	"fmt"
	"io"
	"time"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
)

// MaxResumeSize is the resume upload limit: 5MB, inclusive.
const MaxResumeSize = 5 * 1024 * 1024

const resumeContentType = "application/pdf"

// ResumeFile is a resume upload as received from the client.
type ResumeFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Validate applies the client-side resume rules: PDF only, at most 5MB.
func (f ResumeFile) Validate() error {
	if f.Filename == "" || f.Content == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "resume", Error: "No file selected"})
	}
	if f.ContentType != resumeContentType {
		return core.NewValidationError(nil, core.FieldError{Field: "resume", Error: "Please upload a PDF file"})
	}
	if f.Size > MaxResumeSize {
		return core.NewValidationError(nil, core.FieldError{Field: "resume", Error: "Resume must be less than 5MB"})
	}
	return nil
}

// ResumePath namespaces the upload per user and prefixes a timestamp so a
// re-upload never collides with the previous object.
func ResumePath(userID, filename string, now time.Time) string {
	return fmt.Sprintf("resumes/%s/%d_%s", userID, now.UnixNano()/int64(time.Millisecond), filename)
}
