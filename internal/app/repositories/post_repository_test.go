package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogzkr/campushub/internal/app/models/dto"
)

func TestBuildListPostsQuery_NoFilters(t *testing.T) {
	sql, args, err := BuildListPostsQuery(dto.PostFilter{Offset: 0, Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(*) OVER() AS total")
	assert.Contains(t, sql, "FROM posts p")
	assert.Contains(t, sql, "JOIN users u ON u.id = p.author_id")
	assert.Contains(t, sql, "LEFT JOIN supers s ON s.id = p.attached_id")
	assert.Contains(t, sql, "ORDER BY p.id")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 0")
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestBuildListPostsQuery_TitleFilter(t *testing.T) {
	sql, args, err := BuildListPostsQuery(dto.PostFilter{Title: "robotics", Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, sql, "p.title ILIKE $1")
	require.Len(t, args, 1)
	assert.Equal(t, "%robotics%", args[0])
}

func TestBuildListPostsQuery_TagFilter(t *testing.T) {
	sql, args, err := BuildListPostsQuery(dto.PostFilter{Tags: []string{"social", "food"}, Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, sql, "p.id IN (SELECT pt.post_id FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE t.value = ANY($1))")
	require.Len(t, args, 1)
	assert.Equal(t, []string{"social", "food"}, args[0])
}

func TestBuildListPostsQuery_TypeFilter(t *testing.T) {
	sql, args, err := BuildListPostsQuery(dto.PostFilter{Type: "club", Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, sql, "p.attached_kind = $1")
	require.Len(t, args, 1)
	assert.Equal(t, "club", args[0])
}

func TestBuildCountPostsQuery(t *testing.T) {
	sql, args, err := BuildCountPostsQuery(dto.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM posts p", sql)
	assert.Empty(t, args)

	// the count shares the listing's filters but never its window, so a page
	// past the end still reports how many posts matched
	sql, args, err = BuildCountPostsQuery(dto.PostFilter{
		Title:  "kickoff",
		Tags:   []string{"robotics"},
		Type:   "project",
		Offset: 20,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "p.title ILIKE $1")
	assert.Contains(t, sql, "ANY($2)")
	assert.Contains(t, sql, "p.attached_kind = $3")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
	require.Len(t, args, 3)
}

func TestBuildListPostsQuery_CombinedFilters(t *testing.T) {
	sql, args, err := BuildListPostsQuery(dto.PostFilter{
		Title:  "kickoff",
		Tags:   []string{"robotics"},
		Type:   "project",
		Offset: 20,
		Limit:  10,
	})
	require.NoError(t, err)

	// filters combine with AND and placeholders number consecutively
	assert.Contains(t, sql, "p.title ILIKE $1")
	assert.Contains(t, sql, "ANY($2)")
	assert.Contains(t, sql, "p.attached_kind = $3")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 20")
	require.Len(t, args, 3)
	assert.Equal(t, "%kickoff%", args[0])
	assert.Equal(t, []string{"robotics"}, args[1])
	assert.Equal(t, "project", args[2])
}
