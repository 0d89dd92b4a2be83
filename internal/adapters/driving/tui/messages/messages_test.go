package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPane_String(t *testing.T) {
	tests := []struct {
		pane Pane
		want string
	}{
		{PaneSidebar, "sidebar"},
		{PaneMain, "main"},
		{Pane(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.pane.String())
	}
}
