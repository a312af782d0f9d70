package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/certmint/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		content     string
		wantTitle   string
		wantContent string
		wantErr     bool
	}{
		{"valid", "Diploma", "Awarded for excellence", "Diploma", "Awarded for excellence", false},
		{"trims edges", "  Diploma  ", "\n body \n", "Diploma", "body", false},
		{"keeps inner newlines", "T", "line one\nline two", "T", "line one\nline two", false},
		{"empty title", "", "content", "", "", true},
		{"whitespace title", "   ", "content", "", "", true},
		{"empty content", "title", "", "", "", true},
		{"whitespace content", "title", " \n\t ", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			title, content, err := ValidateFields(tc.title, tc.content)
			if tc.wantErr {
				require.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, title)
			assert.Equal(t, tc.wantContent, content)
		})
	}
}

func TestCertificate_DisplayedAt(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)

	fresh := Certificate{CreatedAt: created, UpdatedAt: created}
	assert.Equal(t, created, fresh.DisplayedAt())
	assert.Equal(t, "Issue date", fresh.TimestampLabel())

	edited := Certificate{CreatedAt: created, UpdatedAt: updated, LastEdited: true}
	assert.Equal(t, updated, edited.DisplayedAt())
	assert.Equal(t, "Last updated", edited.TimestampLabel())
}
