package transcript

import (
	"net/http"
	"testing"
)

func TestNewClientLibraryStrategyNilClient(t *testing.T) {
	strat, ok := NewClientLibraryStrategy(nil).(*clientLibraryStrategy)
	if !ok {
		t.Fatalf("unexpected strategy type %T", strat)
	}
	if strat.http == nil {
		t.Error("nil http client not defaulted")
	}
	if strat.yt.HTTPClient == nil {
		t.Error("nil http client not defaulted for the library client")
	}
}

func TestNewClientLibraryStrategyKeepsGivenClient(t *testing.T) {
	custom := &http.Client{}
	strat := NewClientLibraryStrategy(custom).(*clientLibraryStrategy)
	if strat.http != custom {
		t.Error("provided http client was replaced")
	}
}
