package ai

import (
	"context"
	"errors"
	"testing"
)

func TestParseAdviceResponse_ValidJSON(t *testing.T) {
	raw := `{"summary":"Stock is healthy.","recommendations":["Reorder widgets"],"tables":[],"chartSuggestions":[]}`
	advice := ParseAdviceResponse(raw)
	if advice.Summary != "Stock is healthy." {
		t.Errorf("summary = %q", advice.Summary)
	}
	if len(advice.Recommendations) != 1 || advice.Recommendations[0] != "Reorder widgets" {
		t.Errorf("recommendations = %v", advice.Recommendations)
	}
}

func TestParseAdviceResponse_FencedBlock(t *testing.T) {
	raw := "Here is my analysis:\n```json\n{\"summary\":\"Fenced.\",\"recommendations\":[]}\n```\nHope it helps."
	advice := ParseAdviceResponse(raw)
	if advice.Summary != "Fenced." {
		t.Errorf("summary = %q", advice.Summary)
	}

	// A bare fence without the json tag works too.
	raw = "```\n{\"summary\":\"Bare fence.\"}\n```"
	if got := ParseAdviceResponse(raw).Summary; got != "Bare fence." {
		t.Errorf("summary = %q", got)
	}
}

func TestParseAdviceResponse_MalformedJSONFallsBackToText(t *testing.T) {
	raw := "The warehouse looks fine overall, keep unloading slow movers."
	advice := ParseAdviceResponse(raw)
	if advice.Summary != raw {
		t.Errorf("summary = %q", advice.Summary)
	}
	if advice.Recommendations == nil || advice.Tables == nil || advice.ChartSuggestions == nil {
		t.Error("collections must be empty, not nil")
	}
	if len(advice.Recommendations) != 0 {
		t.Errorf("recommendations = %v", advice.Recommendations)
	}
}

func TestParseAdviceResponse_EmptyInput(t *testing.T) {
	advice := ParseAdviceResponse("  \n ")
	if advice.Summary != "No response from AI." {
		t.Errorf("summary = %q", advice.Summary)
	}
}

func TestParseAdviceResponse_JSONWithoutSummaryFallsBack(t *testing.T) {
	raw := `{"recommendations":["x"]}`
	advice := ParseAdviceResponse(raw)
	if advice.Summary != raw {
		t.Errorf("summary = %q, want raw text fallback", advice.Summary)
	}
}

func TestAdvisor_NotConfigured(t *testing.T) {
	advisor := NewAdvisor("")
	_, err := advisor.Advise(context.Background(), AdviceContext{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
}
