package project

import (
	"fmt"
	"net/url"
	"strings"
)

// ContactMessage is the pre-filled e-mail a student sends a faculty member
// about an open project.
type ContactMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}

// NewContactMessage composes the templated interest e-mail addressed to the
// project's faculty.
func NewContactMessage(p Project) ContactMessage {
	subject := fmt.Sprintf("Interest in Research Project: %s", p.Title)
	body := fmt.Sprintf(
		"Dear %s,\n\nI am interested in the research project \"%s\" and would like to discuss the opportunity further.\n\nBest regards",
		p.FacultyName, p.Title,
	)
	return ContactMessage{
		To:      p.FacultyEmail,
		Subject: subject,
		Body:    body,
		Mailto:  fmt.Sprintf("mailto:%s?subject=%s&body=%s", p.FacultyEmail, mailtoEscape(subject), mailtoEscape(body)),
	}
}

// mailtoEscape percent-encodes for a mailto URL; QueryEscape's '+' for spaces
// is not understood by mail clients.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
