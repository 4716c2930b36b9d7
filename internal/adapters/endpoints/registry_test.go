package endpoints_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/smartmate/internal/adapters/endpoints"
)

func TestRegistry_URL(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		op       endpoints.Operation
		id       string
		expected string
	}{
		{name: "list", op: endpoints.List, expected: "/tasks"},
		{name: "create ignores id", op: endpoints.Create, id: "7", expected: "/tasks"},
		{name: "get", op: endpoints.Get, id: "7", expected: "/tasks/7"},
		{name: "update", op: endpoints.Update, id: "7", expected: "/tasks/7"},
		{name: "delete", op: endpoints.Delete, id: "7", expected: "/tasks/7"},
		{name: "prefix", prefix: "/api/v1/", op: endpoints.Get, id: "7", expected: "/api/v1/tasks/7"},
		{name: "prefix without slash", prefix: "api", op: endpoints.List, expected: "/api/tasks"},
		{name: "escaped id", op: endpoints.Get, id: "a b", expected: "/tasks/a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := endpoints.New(tt.prefix)
			assert.Equal(t, tt.expected, r.URL("tasks", tt.op, tt.id))
		})
	}
}

func TestRegistry_IsPure(t *testing.T) {
	r := endpoints.New("")
	assert.Equal(t, r.Item("users", "u1"), r.Item("users", "u1"))
	assert.Equal(t, "/users", r.Collection("users"))
}
