package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_ToFilter(t *testing.T) {
	tests := []struct {
		name       string
		query      ListQuery
		wantAfter  time.Time
		wantBefore time.Time
		wantErr    string
	}{
		{
			name: "no dates",
		},
		{
			name:       "plain dates cover whole days",
			query:      ListQuery{PublishedAfter: "2025-01-01", PublishedBefore: "2025-01-31"},
			wantAfter:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantBefore: time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "timestamp is normalised to UTC",
			query:     ListQuery{PublishedAfter: "2025-01-01T10:00:00+02:00"},
			wantAfter: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "invalid after",
			query:   ListQuery{PublishedAfter: "last week"},
			wantErr: "published_after",
		},
		{
			name:    "invalid before",
			query:   ListQuery{PublishedBefore: "2025-13-01"},
			wantErr: "published_before",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := tt.query.ToFilter()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.wantAfter.Equal(filter.PublishedAfter), "after: %s", filter.PublishedAfter)
			assert.True(t, tt.wantBefore.Equal(filter.PublishedBefore), "before: %s", filter.PublishedBefore)
		})
	}
}

func TestListQuery_ToFilterCopiesPaging(t *testing.T) {
	filter, err := ListQuery{Page: 3, PerPage: 20, Status: "published", Q: "sea"}.ToFilter()

	require.NoError(t, err)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
	assert.Equal(t, "sea", filter.Query)
	assert.EqualValues(t, "published", filter.Status)
}
