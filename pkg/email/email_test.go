package email_test

import (
	"testing"

	"go-interview-backend/pkg/email"

	"github.com/stretchr/testify/assert"
)

func TestBuildInviteBody(t *testing.T) {
	body, err := email.BuildInviteBody(email.InviteEmailData{
		Name:          "Jane",
		InterviewType: "ai",
		Link:          "https://app.example.com/interview/abc",
	})

	assert.NoError(t, err)
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "https://app.example.com/interview/abc")
}

func TestBuildInviteBodyEscapesHTML(t *testing.T) {
	body, err := email.BuildInviteBody(email.InviteEmailData{
		Name:          "<script>alert(1)</script>",
		InterviewType: "ai",
		Link:          "https://app.example.com/interview/abc",
	})

	assert.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestBuildRejectionBody(t *testing.T) {
	body, err := email.BuildRejectionBody(email.RejectionEmailData{Name: "Jane"})

	assert.NoError(t, err)
	assert.Contains(t, body, "Jane")
}
