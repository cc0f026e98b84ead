package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "plain", title: "Sunny Flat", want: "sunny-flat"},
		{name: "punctuation", title: "  3-room flat, sea view!! ", want: "3-room-flat-sea-view"},
		{name: "russian", title: "Квартира у моря", want: "kvartira-u-morya"},
		{name: "ukrainian", title: "Їжак і ґанок", want: "yizhak-i-ganok"},
		{name: "empty", title: "!!!", want: "item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeSlug(tt.title))
		})
	}
}

func TestMakeSlug_Truncates(t *testing.T) {
	slug := MakeSlug(strings.Repeat("ab ", 60))
	assert.LessOrEqual(t, len(slug), 100)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("sea-view-2"))
	assert.False(t, IsSlug("Sea View"))
	assert.False(t, IsSlug(""))
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "villa", SlugCandidate("villa", 1))
	assert.Equal(t, "villa-3", SlugCandidate("villa", 3))
}
