package tracker

import (
	"math"

	"github.com/banshee-data/geotrack/internal/monitoring"
)

// minInnovationDeterminant is the internal numerical stability floor for
// inverting the 2x2 innovation covariance. Not user-tunable.
const minInnovationDeterminant = 1e-12

// predict advances state and covariance by dt seconds under the
// constant-velocity model: x' = F·x, P' = F·P·Fᵀ + Q. The mean update is
// plain Euler integration with no acceleration term.
func predict(tr *track, dtSeconds float64, cfg Config) {
	if dtSeconds <= 0 {
		return
	}
	dt := dtSeconds

	tr.x[0] += tr.x[2] * dt
	tr.x[1] += tr.x[3] * dt

	// F is identity plus dt coupling position to velocity.
	f := mat4Identity()
	f[0*4+2] = dt
	f[1*4+3] = dt
	p := mat4Mul(mat4Mul(f, tr.p), mat4Transpose(f))

	// The floor applies only inside Q so back-to-back same-timestamp
	// samples still receive nonzero process noise; the mean update above
	// never sees it.
	qdt := dt
	if floor := float64(cfg.ProcessNoiseFloorMillis) / 1000; qdt < floor {
		qdt = floor
	}

	// Q combines a random-walk position term with the discretised
	// white-acceleration block (dt², dt³, dt⁴ weights per axis).
	var q mat4
	q[0*4+0] = cfg.ProcessNoisePosition * qdt
	q[1*4+1] = cfg.ProcessNoisePosition * qdt

	qa := cfg.ProcessNoiseAcceleration
	dt2 := qdt * qdt
	dt3 := dt2 * qdt
	dt4 := dt3 * qdt
	q[0*4+0] += qa * dt4 / 4
	q[0*4+2] += qa * dt3 / 2
	q[1*4+1] += qa * dt4 / 4
	q[1*4+3] += qa * dt3 / 2
	q[2*4+0] += qa * dt3 / 2
	q[2*4+2] += qa * dt2
	q[3*4+1] += qa * dt3 / 2
	q[3*4+3] += qa * dt2

	tr.p = mat4Add(p, q)
}

// correct fuses the local-frame measurement (mx, my) into the track
// using a gated, adaptively reweighted, Joseph-stabilised Kalman update.
// It reports whether the measurement was fused. Every failure mode —
// degenerate innovation covariance, rejected outlier — is a silent no-op
// on state so tracking degrades gracefully on bad input.
func correct(tr *track, mx, my, sigmaMeters, gate, adaptiveScale float64) bool {
	r := sigmaMeters * sigmaMeters

	// Innovation covariance S = P_pos + σ²·I₂.
	s := mat2{tr.p[0] + r, tr.p[1], tr.p[4], tr.p[5] + r}
	det := mat2Det(s)
	if det < minInnovationDeterminant {
		monitoring.Logf("tracker: degenerate innovation covariance on track %s (det=%g), update skipped", tr.id, det)
		return false
	}
	sInv := mat2Inverse(s, det)

	nu := vec2{mx - tr.x[0], my - tr.x[1]}
	d2 := nu[0]*(sInv[0]*nu[0]+sInv[1]*nu[1]) + nu[1]*(sInv[2]*nu[0]+sInv[3]*nu[1])

	if d2 > gate {
		monitoring.Logf("tracker: rejected outlier on track %s (d2=%.2f gate=%.2f)", tr.id, d2, gate)
		return false
	}

	// Accepted-but-surprising innovations are trusted less rather than
	// fully rejected: inflate σ² with the innovation magnitude and redo
	// S and its inverse. Inflation only grows det, so no recheck needed.
	if scale := 1 + adaptiveScale*math.Max(d2, 0); scale != 1 {
		r *= scale
		s = mat2{tr.p[0] + r, tr.p[1], tr.p[4], tr.p[5] + r}
		sInv = mat2Inverse(s, mat2Det(s))
	}

	// Kalman gain K = P·Hᵀ·S⁻¹; with H selecting the position block,
	// P·Hᵀ is the first two columns of P.
	var ph mat4x2
	for i := 0; i < 4; i++ {
		ph[i*2+0] = tr.p[i*4+0]
		ph[i*2+1] = tr.p[i*4+1]
	}
	k := mat4x2MulMat2(ph, sInv)

	dx := mat4x2MulVec2(k, nu)
	for i := range tr.x {
		tr.x[i] += dx[i]
	}

	// Joseph form P = (I−KH)·P·(I−KH)ᵀ + K·(σ²·I₂)·Kᵀ. The textbook
	// short form (I−KH)·P loses symmetry and positive-definiteness under
	// repeated rounding; this one guarantees both algebraically.
	ikh := mat4Identity()
	for i := 0; i < 4; i++ {
		ikh[i*4+0] -= k[i*2+0]
		ikh[i*4+1] -= k[i*2+1]
	}
	joseph := mat4Mul(mat4Mul(ikh, tr.p), mat4Transpose(ikh))
	tr.p = mat4Add(joseph, mat4x2ScaledGram(k, r))
	return true
}
