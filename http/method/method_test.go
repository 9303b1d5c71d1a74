package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recognized = []Method{GET, HEAD, POST, PUT, DELETE, CONNECT, OPTIONS, TRACE, PATCH}

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for _, i := range append([]Method{Unknown}, recognized...) {
		b.Run(i.String(), func(b *testing.B) {
			m := i.String()
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	for _, method := range recognized {
		assert.Equal(t, method, Parse(method.String()))
	}

	t.Run("case sensitive", func(t *testing.T) {
		require.Equal(t, Unknown, Parse("get"))
		require.Equal(t, Unknown, Parse("Head"))
	})

	t.Run("garbage", func(t *testing.T) {
		require.Equal(t, Unknown, Parse(""))
		require.Equal(t, Unknown, Parse("GOT"))
		require.Equal(t, Unknown, Parse("OPTIONSS"))
	})
}

func TestImplemented(t *testing.T) {
	for _, method := range recognized {
		assert.Equal(t, method == GET || method == HEAD, Implemented(method), method.String())
	}

	require.False(t, Implemented(Unknown))
}
