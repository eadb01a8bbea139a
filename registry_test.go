package gw_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/cloud-cli/gw"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	// Arrange
	reg := gw.NewRegistry()

	// Act + Assert
	require.Equal(t, []string{}, reg.List())
	require.False(t, reg.Has("users"))

	// Arrange
	users := gw.Resource{CORS: &gw.CORSPolicy{}}
	orders := gw.Resource{}

	// Act
	actual := reg.Add("Users", users).Add("orders", orders)

	// Assert
	require.Same(t, reg, actual)
	require.True(t, reg.Has("users"))
	require.True(t, reg.Has("USERS"))
	require.Equal(t, []string{"users", "orders"}, reg.List())

	res, ok := reg.Get("users")
	require.True(t, ok)
	require.NotNil(t, res.CORS)

	// Act
	reg.Add("users", gw.Resource{})

	// Assert
	require.Equal(t, []string{"users", "orders"}, reg.List())
	res, ok = reg.Get("users")
	require.True(t, ok)
	require.Nil(t, res.CORS)

	_, ok = reg.Get("missing")
	require.False(t, ok)
}

func TestRegistryZeroValue(t *testing.T) {
	// Arrange
	var reg gw.Registry

	// Act
	reg.Add("a", gw.Resource{})

	// Assert
	require.Equal(t, []string{"a"}, reg.List())
}

func TestRegistryConcurrent(t *testing.T) {
	// Arrange
	var wg sync.WaitGroup
	reg := gw.NewRegistry()

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// Act + Assert
			require.NotPanics(t, func() {
				reg.Add(fmt.Sprintf("res-%d", i), gw.Resource{})
				reg.Has("res-0")
				reg.List()
			})
		}(i)
	}

	wg.Wait()
	require.Len(t, reg.List(), 50)
}
