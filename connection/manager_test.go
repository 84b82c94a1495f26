package connection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigEndpoint(t *testing.T) {
	config := Config{Host: "mainnet.helius-rpc.com", Token: "?api-key=abc", IsSecure: true}
	require.Equal(t, "https://mainnet.helius-rpc.com/?api-key=abc", config.GetRpcEndpoint())

	config = Config{Host: "127.0.0.1:8899"}
	require.Equal(t, "http://127.0.0.1:8899", config.GetRpcEndpoint())
}

func TestConfigHash(t *testing.T) {
	a := Config{Host: "localhost", Headers: map[string]string{"a": "1", "b": "2"}}
	b := Config{Host: "localhost", Headers: map[string]string{"b": "2", "a": "1"}}
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), (&Config{Host: "localhost"}).Hash())
}

func TestManagerGetRpc(t *testing.T) {
	manager := CreateManager()
	require.Panics(t, func() { manager.GetRpc() })

	id := manager.AddConfig(Config{Host: "localhost:8899", MaxReferrer: 2})
	require.Equal(t, "named", manager.AddConfig(Config{Host: "localhost:8900"}, "named"))

	first := manager.GetRpc(id)
	second := manager.GetRpc(id)
	require.NotSame(t, first, second)

	third := manager.GetRpc(id)
	require.True(t, third == first || third == second)
	require.Len(t, manager.rpcConnections[id], 2)

	require.NotNil(t, manager.GetRpc("unknown"))
}
