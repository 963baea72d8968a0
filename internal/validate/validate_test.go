package validate

import (
	"testing"

	"redress/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() types.SubmitGrievance {
	return types.SubmitGrievance{
		Title:          "Broken AC in Room 204",
		Description:    "The air conditioning unit in hostel room 204 has been non-functional for five days.",
		Category:       "hostel",
		SubmitterName:  "Jordan Lee",
		SubmitterEmail: "jordan.lee@example.edu",
	}
}

func TestSubmissionValid(t *testing.T) {
	result := Submission(validSubmission())

	assert.True(t, result.Valid())
	assert.Empty(t, result.Errors)
}

func TestSubmissionAnonymousSkipsContactChecks(t *testing.T) {
	in := validSubmission()
	in.Anonymous = true
	in.SubmitterName = ""
	in.SubmitterEmail = ""

	result := Submission(in)

	assert.True(t, result.Valid())
}

func TestSubmissionSingleViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.SubmitGrievance)
		wantErr string
	}{
		{
			name:    "short title",
			mutate:  func(in *types.SubmitGrievance) { in.Title = "AC" },
			wantErr: "Title must be at least 5 characters long",
		},
		{
			name:    "whitespace-padded short title",
			mutate:  func(in *types.SubmitGrievance) { in.Title = "  AC  " },
			wantErr: "Title must be at least 5 characters long",
		},
		{
			name:    "short description",
			mutate:  func(in *types.SubmitGrievance) { in.Description = "it is broken" },
			wantErr: "Description must be at least 20 characters long",
		},
		{
			name:    "missing category",
			mutate:  func(in *types.SubmitGrievance) { in.Category = "   " },
			wantErr: "Please select a category",
		},
		{
			name:    "short name",
			mutate:  func(in *types.SubmitGrievance) { in.SubmitterName = "J" },
			wantErr: "Name must be at least 2 characters long",
		},
		{
			name:    "invalid email",
			mutate:  func(in *types.SubmitGrievance) { in.SubmitterEmail = "not-an-email" },
			wantErr: "Please enter a valid email address",
		},
		{
			name:    "email missing tld",
			mutate:  func(in *types.SubmitGrievance) { in.SubmitterEmail = "jordan@example" },
			wantErr: "Please enter a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmission()
			tt.mutate(&in)

			result := Submission(in)

			assert.False(t, result.Valid())
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantErr, result.Errors[0])
		})
	}
}

func TestSubmissionAccumulatesAllViolations(t *testing.T) {
	result := Submission(types.SubmitGrievance{})

	assert.False(t, result.Valid())
	assert.Equal(t, []string{
		"Title must be at least 5 characters long",
		"Description must be at least 20 characters long",
		"Please select a category",
		"Name must be at least 2 characters long",
		"Please enter a valid email address",
	}, result.Errors)
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.edu", true},
		{"  user@example.com  ", true},
		{"user@example", false},
		{"user example@test.com", false},
		{"@example.com", false},
		{"user@.com", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.email), "email %q", tt.email)
	}
}
