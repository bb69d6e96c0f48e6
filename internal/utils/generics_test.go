package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetListenAddress(t *testing.T) {
	tests := []struct {
		name string
		port string
		env  string
		want string
	}{
		{"development", "3000", "development", ":3000"},
		{"production", "3000", "production", "0.0.0.0:3000"},
		{"invalid port", "abc", "development", ":8080"},
		{"out of range", "70000", "production", "0.0.0.0:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetListenAddress(tt.port, tt.env))
		})
	}
}
