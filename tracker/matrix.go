package tracker

// Fixed-size row-major matrix helpers for the 4-state constant-velocity
// filter. The hot path is a handful of 4x4 and 4x2 products plus an
// analytic 2x2 inverse, so these stay hand-rolled instead of pulling in
// a general linear-algebra dependency.

type vec2 [2]float64
type vec4 [4]float64
type mat2 [4]float64   // 2x2
type mat4 [16]float64  // 4x4
type mat4x2 [8]float64 // 4x2

func mat4Identity() mat4 {
	var m mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func mat4Mul(a, b mat4) mat4 {
	var out mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i*4+k] * b[k*4+j]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

func mat4Transpose(a mat4) mat4 {
	var out mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j*4+i] = a[i*4+j]
		}
	}
	return out
}

func mat4Add(a, b mat4) mat4 {
	var out mat4
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

func mat2Det(m mat2) float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// mat2Inverse inverts m given its precomputed (nonzero) determinant.
func mat2Inverse(m mat2, det float64) mat2 {
	return mat2{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det}
}

// mat4x2MulMat2 returns a·b, a 4x2 result.
func mat4x2MulMat2(a mat4x2, b mat2) mat4x2 {
	var out mat4x2
	for i := 0; i < 4; i++ {
		out[i*2+0] = a[i*2+0]*b[0] + a[i*2+1]*b[2]
		out[i*2+1] = a[i*2+0]*b[1] + a[i*2+1]*b[3]
	}
	return out
}

// mat4x2MulVec2 returns a·v.
func mat4x2MulVec2(a mat4x2, v vec2) vec4 {
	var out vec4
	for i := 0; i < 4; i++ {
		out[i] = a[i*2+0]*v[0] + a[i*2+1]*v[1]
	}
	return out
}

// mat4x2ScaledGram returns s·(a·aᵀ), the symmetric 4x4 Gram matrix of a
// scaled by s. With s = σ² this is the K·R·Kᵀ term of the Joseph update
// for an isotropic measurement noise R = σ²·I₂.
func mat4x2ScaledGram(a mat4x2, s float64) mat4 {
	var out mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = s * (a[i*2+0]*a[j*2+0] + a[i*2+1]*a[j*2+1])
		}
	}
	return out
}
