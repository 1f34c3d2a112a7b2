package mailer

import (
	"bytes"
	"testing"

	"incorporate-run-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureTemplateEscapesInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, signatureTemplate.Execute(&buf, SignatureRequest{
		SignerName:    "<script>",
		DocumentTitle: "Bylaws",
		CompanyName:   "Acme",
		SignURL:       "https://app.test/sign/abc",
	}))

	body := buf.String()
	assert.Contains(t, body, "https://app.test/sign/abc")
	assert.NotContains(t, body, "<script>")
}

func TestInvitationTemplateDefaultsRole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, invitationTemplate.Execute(&buf, FounderInvitation{FounderName: "Ada", CompanyName: "Acme"}))
	assert.Contains(t, buf.String(), "a founder of Acme")
}

func TestDisabledEmailService(t *testing.T) {
	err := NewDisabledEmailService().SendSignatureRequest("a@b.test", SignatureRequest{})
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}
