// Package savgol implements Savitzky-Golay smoothing: a least-squares
// polynomial fit over a sliding window, evaluated at the window center.
package savgol

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/oceansense/despike/pkg/classifiers"
)

// Smoother fits a polynomial of fixed degree over a sliding window.
//
// The leading and trailing half-windows pass through unsmoothed. Leaving
// the edges raw keeps edge residuals honest; extrapolated fits would pull
// them artificially toward zero.
type Smoother struct {
	window int
	degree int
	left   int
	right  int
	qr     *mat.QR
}

// New creates a Smoother. The window must exceed 2 samples and the degree
// must be positive and below the window size, otherwise the fit is
// underdetermined.
func New(window, degree int) (*Smoother, error) {
	if window <= 2 {
		return nil, errors.New("smoothing window must be greater than 2")
	}
	if degree < 1 || degree >= window {
		return nil, errors.New("polynomial degree must be in [1, window)")
	}

	// For even windows the right half-window is one sample longer.
	left := (window - 1) / 2
	right := window / 2

	// Window positions are fixed relative to the center, so the design
	// matrix and its factorization are shared by every fit.
	design := mat.NewDense(window, degree+1, nil)
	for row := 0; row < window; row++ {
		x := float64(row - left)
		v := 1.0
		for col := 0; col <= degree; col++ {
			design.Set(row, col, v)
			v *= x
		}
	}

	var qr mat.QR
	qr.Factorize(design)

	return &Smoother{
		window: window,
		degree: degree,
		left:   left,
		right:  right,
		qr:     &qr,
	}, nil
}

// Smooth returns the smoothed signal. Samples without a full window on
// both sides are returned unchanged.
func (s *Smoother) Smooth(signal classifiers.Signal) (classifiers.Signal, error) {
	if len(signal) == 0 {
		return nil, errors.New("empty signal")
	}

	out := make(classifiers.Signal, len(signal))
	copy(out, signal)

	n := len(signal)
	if n < s.window {
		return out, nil
	}

	y := mat.NewVecDense(s.window, nil)
	var coef mat.VecDense

	for i := s.left; i < n-s.right; i++ {
		for j := 0; j < s.window; j++ {
			y.SetVec(j, signal[i-s.left+j])
		}
		if err := s.qr.SolveVecTo(&coef, false, y); err != nil {
			return nil, err
		}
		// The window coordinate of sample i is 0, so the fitted value
		// is the constant coefficient.
		out[i] = coef.AtVec(0)
	}

	return out, nil
}

// Window returns the configured window size.
func (s *Smoother) Window() int { return s.window }

// Degree returns the configured polynomial degree.
func (s *Smoother) Degree() int { return s.degree }
