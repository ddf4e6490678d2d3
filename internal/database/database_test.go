package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPool_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Pool
		want Pool
	}{
		{
			name: "Zero values take defaults",
			in:   Pool{},
			want: Pool{MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifetime: 5 * time.Minute},
		},
		{
			name: "Explicit values kept",
			in:   Pool{MaxOpenConns: 10, MaxIdleConns: 2, ConnMaxLifetime: time.Minute},
			want: Pool{MaxOpenConns: 10, MaxIdleConns: 2, ConnMaxLifetime: time.Minute},
		},
		{
			name: "Negative values fall back",
			in:   Pool{MaxOpenConns: -1, MaxIdleConns: -1, ConnMaxLifetime: -time.Second},
			want: Pool{MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifetime: 5 * time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.withDefaults())
		})
	}
}
