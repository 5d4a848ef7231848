package container

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/vaultcore/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachToGlobal_InstallsOnce(t *testing.T) {
	var g Global
	require.Nil(t, g.Container())

	first := New(cryptox.NewService())
	second := New(cryptox.NewService())

	assert.True(t, first.AttachToGlobal(&g))
	assert.False(t, second.AttachToGlobal(&g))
	assert.False(t, first.AttachToGlobal(&g))
	assert.Same(t, first, g.Container())
}

func TestAttachToGlobal_ConcurrentSingleWinner(t *testing.T) {
	var g Global
	const n = 32

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins []*Container
	)
	for i := 0; i < n; i++ {
		c := New(cryptox.NewService())
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.AttachToGlobal(&g) {
				mu.Lock()
				wins = append(wins, c)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, wins, 1)
	assert.Same(t, wins[0], g.Container())
}

func TestContainer_Crypto(t *testing.T) {
	svc := cryptox.NewService()
	c := New(svc)
	assert.Same(t, svc, c.Crypto())
	assert.False(t, c.Crypto().HasKey())
}
