package safepool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReturnsFreshValues(t *testing.T) {
	calls := 0
	pool := NewPool(func() *bytes.Buffer {
		calls++
		return new(bytes.Buffer)
	})

	a := pool.Get()
	b := pool.Get()

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, calls)
}

func TestConcurrentUse(t *testing.T) {
	pool := NewPool(func() *bytes.Buffer { return new(bytes.Buffer) })

	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				buf := pool.Get()
				buf.Reset()
				buf.WriteString("x")
				assert.Equal(t, "x", buf.String())
				pool.Put(buf)
			}
		}(i)
	}

	wg.Wait()
}
