package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantScope(t *testing.T) {
	tests := []struct {
		name         string
		scope        TenantScope
		bound        bool
		readable     bool
		ownsA, ownsB bool
	}{
		{name: "unbound", scope: TenantScope{}},
		{name: "empty id", scope: ScopeTo("")},
		{name: "bound", scope: ScopeTo("a"), bound: true, readable: true, ownsA: true},
		{name: "cross tenant", scope: CrossTenant(), readable: true, ownsA: true, ownsB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bound, tt.scope.Bound())
			assert.Equal(t, tt.readable, tt.scope.Readable())
			assert.Equal(t, tt.ownsA, tt.scope.Owns("a"))
			assert.Equal(t, tt.ownsB, tt.scope.Owns("b"))
			assert.False(t, tt.scope.Owns(""))
		})
	}
}
