package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat4Identity(t *testing.T) {
	t.Parallel()

	m := mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	assert.Equal(t, m, mat4Mul(mat4Identity(), m))
	assert.Equal(t, m, mat4Mul(m, mat4Identity()))
}

func TestMat4MulKnownProduct(t *testing.T) {
	t.Parallel()

	a := mat4Identity()
	a[0*4+2] = 2 // position-velocity coupling, dt=2
	a[1*4+3] = 2
	b := mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		3, 0, 1, 0,
		0, 3, 0, 1,
	}
	got := mat4Mul(a, b)
	want := mat4{
		7, 0, 2, 0,
		0, 7, 0, 2,
		3, 0, 1, 0,
		0, 3, 0, 1,
	}
	assert.Equal(t, want, got)
}

func TestMat4Transpose(t *testing.T) {
	t.Parallel()

	m := mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	mt := mat4Transpose(m)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, m[i*4+j], mt[j*4+i])
		}
	}
	assert.Equal(t, m, mat4Transpose(mt))
}

func TestMat4Add(t *testing.T) {
	t.Parallel()

	a := mat4Identity()
	b := mat4Identity()
	sum := mat4Add(a, b)
	assert.Equal(t, 2.0, sum[0])
	assert.Equal(t, 0.0, sum[1])
	assert.Equal(t, 2.0, sum[15])
}

func TestMat2Inverse(t *testing.T) {
	t.Parallel()

	m := mat2{4, 1, 2, 3} // det = 10
	det := mat2Det(m)
	assert.InDelta(t, 10, det, 1e-12)

	inv := mat2Inverse(m, det)
	// m · inv = I
	prod := mat2{
		m[0]*inv[0] + m[1]*inv[2], m[0]*inv[1] + m[1]*inv[3],
		m[2]*inv[0] + m[3]*inv[2], m[2]*inv[1] + m[3]*inv[3],
	}
	assert.InDelta(t, 1, prod[0], 1e-12)
	assert.InDelta(t, 0, prod[1], 1e-12)
	assert.InDelta(t, 0, prod[2], 1e-12)
	assert.InDelta(t, 1, prod[3], 1e-12)
}

func TestMat4x2ScaledGram(t *testing.T) {
	t.Parallel()

	k := mat4x2{
		1, 2,
		0, 1,
		3, 0,
		1, 1,
	}
	g := mat4x2ScaledGram(k, 2.0)

	// symmetric by construction
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, g[i*4+j], g[j*4+i])
		}
	}
	// spot-check one entry: 2 * (k[0]·k[2]) = 2 * (1*3 + 2*0)
	assert.Equal(t, 6.0, g[0*4+2])
	// diagonal entries are non-negative for positive scale
	for i := 0; i < 4; i++ {
		assert.GreaterOrEqual(t, g[i*4+i], 0.0)
	}
}

func TestMat4x2MulVec2(t *testing.T) {
	t.Parallel()

	k := mat4x2{
		1, 0,
		0, 1,
		2, 0,
		0, 2,
	}
	v := mat4x2MulVec2(k, vec2{3, 4})
	assert.Equal(t, vec4{3, 4, 6, 8}, v)
}
