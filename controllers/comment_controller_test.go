package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCommentBodyFixedOrder(t *testing.T) {
	body := renderCommentBody(commentPayload{
		Transportation: "bus from the city center",
		Fee:            "20000 UZS",
		Services:       "guide available",
		RoadProblems:   "none",
		PriceChange:    "up 10% since spring",
	})
	assert.Equal(t,
		"Transportation: bus from the city center\n"+
			"Fee: 20000 UZS\n"+
			"Services: guide available\n"+
			"Road problems: none\n"+
			"Price change: up 10% since spring",
		body)
}

func TestRenderCommentBodyIncludesOtherWhenSet(t *testing.T) {
	p := commentPayload{
		Transportation: "taxi",
		Fee:            "free",
		Services:       "restrooms",
		RoadProblems:   "gravel road",
		PriceChange:    "stable",
	}
	assert.NotContains(t, renderCommentBody(p), "Other:")

	p.Other = "crowded on weekends"
	body := renderCommentBody(p)
	assert.Contains(t, body, "Other: crowded on weekends")
	// optional section always comes last
	assert.Regexp(t, `Other: crowded on weekends$`, body)
}

func TestRenderCommentBodySkipsBlankOther(t *testing.T) {
	p := commentPayload{
		Transportation: "walk",
		Fee:            "free",
		Services:       "none",
		RoadProblems:   "none",
		PriceChange:    "none",
		Other:          "   ",
	}
	assert.NotContains(t, renderCommentBody(p), "Other:")
}
