package class

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/tests"
)

func TestNewClass_Validate(t *testing.T) {
	v := testutil.NewValidator(InitValidators)

	photo := func(mediaType string, size int) *core.Attachment {
		return core.NewAttachment("cover", mediaType, make([]byte, size))
	}

	tests := []struct {
		name  string
		draft NewClass
		want  core.ValidationResult
	}{
		{
			name:  "valid without optional fields",
			draft: NewClass{Subject: "Math", MonthlyFee: "50"},
			want:  core.ValidationResult{},
		},
		{
			name:  "valid with everything",
			draft: NewClass{Subject: "Physics", MonthlyFee: "10000", Description: "Mechanics", CoverPhoto: photo("image/png", 1000)},
			want:  core.ValidationResult{},
		},
		{
			name:  "empty subject",
			draft: NewClass{Subject: "", MonthlyFee: "50"},
			want:  core.ValidationResult{"subject": "Subject is required"},
		},
		{
			name:  "blank subject",
			draft: NewClass{Subject: "   ", MonthlyFee: "50"},
			want:  core.ValidationResult{"subject": "Subject is required"},
		},
		{
			name:  "short subject",
			draft: NewClass{Subject: "M", MonthlyFee: "50"},
			want:  core.ValidationResult{"subject": "Subject must be at least 2 characters long"},
		},
		{
			name:  "subject of 50 characters",
			draft: NewClass{Subject: strings.Repeat("a", 50), MonthlyFee: "50"},
			want:  core.ValidationResult{},
		},
		{
			name:  "long subject",
			draft: NewClass{Subject: strings.Repeat("a", 51), MonthlyFee: "50"},
			want:  core.ValidationResult{"subject": "Subject must be less than 50 characters"},
		},
		{
			name:  "empty fee",
			draft: NewClass{Subject: "Math"},
			want:  core.ValidationResult{"monthlyFee": "Monthly fee is required"},
		},
		{
			name:  "non numeric fee",
			draft: NewClass{Subject: "Math", MonthlyFee: "abc"},
			want:  core.ValidationResult{"monthlyFee": "Monthly fee must be a positive number"},
		},
		{
			name:  "zero fee",
			draft: NewClass{Subject: "Math", MonthlyFee: "0"},
			want:  core.ValidationResult{"monthlyFee": "Monthly fee must be a positive number"},
		},
		{
			name:  "negative fee",
			draft: NewClass{Subject: "Math", MonthlyFee: "-5"},
			want:  core.ValidationResult{"monthlyFee": "Monthly fee must be a positive number"},
		},
		{
			name:  "fee too high",
			draft: NewClass{Subject: "Math", MonthlyFee: "10000.01"},
			want:  core.ValidationResult{"monthlyFee": "Monthly fee cannot exceed $10,000"},
		},
		{
			name:  "long description",
			draft: NewClass{Subject: "Math", MonthlyFee: "50", Description: strings.Repeat("d", 501)},
			want:  core.ValidationResult{"description": "Description must be less than 500 characters"},
		},
		{
			name:  "gif cover photo",
			draft: NewClass{Subject: "Math", MonthlyFee: "99", CoverPhoto: photo("image/gif", 1000)},
			want:  core.ValidationResult{"coverPhoto": "Cover photo must be a JPEG or PNG file"},
		},
		{
			name:  "cover photo too large",
			draft: NewClass{Subject: "Math", MonthlyFee: "99", CoverPhoto: photo("image/jpeg", 5*core.MiB+1)},
			want:  core.ValidationResult{"coverPhoto": "Cover photo must be less than 5MB"},
		},
		{
			name:  "every field invalid",
			draft: NewClass{Subject: "", MonthlyFee: "-1", Description: strings.Repeat("d", 501), CoverPhoto: photo("image/gif", 10)},
			want: core.ValidationResult{
				"subject":     "Subject is required",
				"monthlyFee":  "Monthly fee must be a positive number",
				"description": "Description must be less than 500 characters",
				"coverPhoto":  "Cover photo must be a JPEG or PNG file",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.draft)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, v.Validate(tt.draft), "validation is not idempotent")
		})
	}
}

func TestNewClass_Payload(t *testing.T) {
	t.Run("json without cover photo", func(t *testing.T) {
		p := NewClass{Subject: "Math", MonthlyFee: " 50.5 ", Description: "Algebra"}.Payload()
		assert.False(t, p.IsMultipart())
		assert.Equal(t, map[string]interface{}{"subject": "Math", "monthlyFee": 50.5, "description": "Algebra"}, testutil.PayloadMap(&p))
	})

	t.Run("multipart with cover photo", func(t *testing.T) {
		photo := core.NewAttachment("cover.png", "image/png", []byte("png"))
		p := NewClass{Subject: "Math", MonthlyFee: "50", CoverPhoto: photo}.Payload()
		assert.True(t, p.IsMultipart())
		assert.Equal(t, []core.FilePart{{Field: "coverPhoto", Attachment: photo}}, p.Files)
	})
}
