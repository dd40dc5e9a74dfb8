package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreateValueSQL(t *testing.T) {
	// the DO UPDATE arm is what makes the statement always return an id:
	// a plain DO NOTHING would return no row on conflict, so two supers
	// tagged "web" would not converge on the one existing tags row
	assert.Equal(t,
		`INSERT INTO tags (value) VALUES ($1) ON CONFLICT (value) DO UPDATE SET value = EXCLUDED.value RETURNING id`,
		getOrCreateValueSQL("tags"))
	assert.Equal(t,
		`INSERT INTO links (value) VALUES ($1) ON CONFLICT (value) DO UPDATE SET value = EXCLUDED.value RETURNING id`,
		getOrCreateValueSQL("links"))
}

func TestAttachValueSQL(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO super_tags (super_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		attachValueSQL("super_tags", "super_id", "tag_id"))
	assert.Equal(t,
		`INSERT INTO super_links (super_id, link_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		attachValueSQL("super_links", "super_id", "link_id"))
	assert.Equal(t,
		`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		attachValueSQL("post_tags", "post_id", "tag_id"))
}
