package network_nmcli

import (
	"context"

	wifid "github.com/dogeorg/wifid/pkg"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of wifid.CommandRunner.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, inv wifid.Invocation) (string, error) {
	args := m.Called(ctx, inv)
	return args.String(0), args.Error(1)
}

func named(name string) interface{} {
	return mock.MatchedBy(func(inv wifid.Invocation) bool {
		return inv.Name == name
	})
}
