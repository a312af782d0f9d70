// Package models defines the certificate entity managed by certmint.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/certmint/internal/common"
)

// Certificate is the sole persisted entity: a short text record the user
// authors, exports as a card image and optionally mints as an NFT.
//
// Field semantics:
//   - ID is assigned at creation and never changes.
//   - CreatedAt is fixed at creation; UpdatedAt equals CreatedAt until the
//     first successful edit and advances on every edit after that.
//   - LastEdited is false exactly as long as UpdatedAt == CreatedAt.
type Certificate struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	LastEdited bool      `json:"lastEdited"`
}

// ValidateFields checks the user-editable fields of a certificate and
// returns the trimmed values. Title and content must be non-empty after
// trimming; content keeps its inner newlines.
func ValidateFields(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return "", "", fmt.Errorf("%w: title must not be empty", common.ErrValidation)
	}
	if content == "" {
		return "", "", fmt.Errorf("%w: content must not be empty", common.ErrValidation)
	}
	return title, content, nil
}

// DisplayedAt returns the timestamp shown on cards and listings: the last
// update time once the certificate has been edited, the issue time before.
func (c Certificate) DisplayedAt() time.Time {
	if c.LastEdited {
		return c.UpdatedAt
	}
	return c.CreatedAt
}

// TimestampLabel returns the caption that goes with DisplayedAt.
func (c Certificate) TimestampLabel() string {
	if c.LastEdited {
		return "Last updated"
	}
	return "Issue date"
}
