package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogzkr/campushub/internal/app/models"
)

func TestFromPost_NoAttachment(t *testing.T) {
	text := "hello"
	resp := FromPost(&models.Post{
		ID:          1,
		AuthorID:    2,
		Title:       "Plain",
		ContentType: models.ContentTypeText,
		Text:        &text,
		Author:      &models.User{ID: 2, Username: "ayse", DisplayName: "Ayşe"},
	}, 3, true)

	assert.Equal(t, "text", resp.ContentType)
	assert.Equal(t, "ayse", resp.Username)
	assert.Equal(t, int64(3), resp.LikeNumber)
	assert.True(t, resp.Liked)
	assert.NotNil(t, resp.Tags)
	assert.Empty(t, resp.Tags)

	// every attachment slot serializes as {id: null, name: null}
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, slot := range []string{"project", "event", "club", "misc"} {
		assert.JSONEq(t, `{"id": null, "name": null}`, string(decoded[slot]), slot)
	}
}

func TestFromPost_Attachment(t *testing.T) {
	name := "Robotics Club"
	resp := FromPost(&models.Post{
		ID:             1,
		Title:          "Meeting notes",
		ContentType:    models.ContentTypeText,
		Attachment:     &models.AttachmentRef{Kind: models.AttachmentClub, SuperID: 9},
		AttachmentName: &name,
		Tags:           []string{"minutes"},
	}, 0, false)

	require.NotNil(t, resp.Club.ID)
	assert.Equal(t, int64(9), *resp.Club.ID)
	require.NotNil(t, resp.Club.Name)
	assert.Equal(t, "Robotics Club", *resp.Club.Name)
	assert.Nil(t, resp.Project.ID)
	assert.Nil(t, resp.Event.ID)
	assert.Nil(t, resp.Misc.ID)
	assert.Equal(t, []string{"minutes"}, resp.Tags)
}

func TestFromPost_MiscAttachment(t *testing.T) {
	resp := FromPost(&models.Post{
		ID:          1,
		Title:       "General",
		ContentType: models.ContentTypeImage,
		Attachment:  &models.AttachmentRef{Kind: models.AttachmentMisc, SuperID: 4},
	}, 0, false)

	require.NotNil(t, resp.Misc.ID)
	assert.Equal(t, int64(4), *resp.Misc.ID)
	assert.Nil(t, resp.Misc.Name, "name stays null when the join produced none")
}

func TestFromComment(t *testing.T) {
	resp := FromComment(&models.Comment{
		ID:     1,
		PostID: 2,
		UserID: 3,
		Text:   "first!",
		User:   &models.User{ID: 3, Username: "ayse"},
	})

	assert.Equal(t, int64(3), resp.User)
	assert.Equal(t, "ayse", resp.Username)

	// username is empty when the author was not joined in
	bare := FromComment(&models.Comment{ID: 1, UserID: 3, Text: "x"})
	assert.Empty(t, bare.Username)
}
