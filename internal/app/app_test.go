package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAssistantApp_Initializers(t *testing.T) {
	app := NewAssistantApp()
	require.NotNil(t, app, "NewAssistantApp should not return nil")
}
