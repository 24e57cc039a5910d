package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Size(t *testing.T) {
	assert.Equal(t, "0.0 MB", Document{}.Size())
	assert.Equal(t, "1.5 MB", Document{SizeBytes: 1572864}.Size())
}

func TestUploadDocumentRequest_Validate(t *testing.T) {
	req := UploadDocumentRequest{
		Name:       "Q1 salary",
		Type:       "Salary Report",
		Employee:   "Asha Rao",
		Department: "Finance",
	}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "Active", req.Status)

	req.Department = "Legal"
	req.File = strings.NewReader("x")
	req.FileSize = MaxUploadSize + 1
	err := req.Validate()
	assert.ErrorContains(t, err, "department")
	assert.ErrorContains(t, err, "file")
}
