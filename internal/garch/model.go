// Package garch fits a GARCH(1,1) conditional volatility model by maximum
// likelihood:
//
//	r_t = sigma_t * eps_t
//	sigma_t^2 = omega + alpha1*r_{t-1}^2 + beta1*sigma_{t-1}^2
//
// with Gaussian innovations. Estimation delegates the optimization to
// gonum/optimize rather than reimplementing a nonlinear solver.
package garch

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInsufficientData indicates too few returns for a numerically
	// reliable fit.
	ErrInsufficientData = errors.New("insufficient data for garch fit")
	// ErrConvergence indicates the optimizer did not converge within its
	// evaluation budget, or the information matrix could not be inverted.
	ErrConvergence = errors.New("garch estimation failed to converge")
	// ErrNonStationary indicates a fitted model with alpha1+beta1 >= 1.
	ErrNonStationary = errors.New("fitted model violates stationarity")
	// ErrInvalidInput indicates a degenerate return series (zero variance).
	ErrInvalidInput = errors.New("invalid return series")
)

const (
	// MinObservations is the smallest sample size accepted for estimation.
	MinObservations = 30
	// MaxEvaluations bounds the likelihood evaluations during optimization.
	MaxEvaluations = 20000
	// BurnIn is the number of leading standardized residuals to drop before
	// diagnostics. sigma_1^2 is seeded from the unconditional sample
	// variance rather than the recursion, so the first residual is not
	// model-filtered.
	BurnIn = 1
)

// Coefficient is one estimated model parameter with its sampling statistics.
type Coefficient struct {
	Name     string
	Estimate float64
	StdError float64
	TStat    float64
	PValue   float64
}

// Fit holds the result of a GARCH(1,1) estimation. It is created once and
// read-only afterward.
type Fit struct {
	Omega  float64
	Alpha1 float64
	Beta1  float64

	coeffs []Coefficient

	// CondStdDev and StdResiduals align index-for-index with the input
	// return series.
	CondStdDev   []float64
	StdResiduals []float64

	LogLikelihood float64
	AIC           float64
	BIC           float64
	Iterations    int
	FuncEvals     int
}

// Coefficients returns the estimated parameters in omega, alpha1, beta1
// order.
func (f *Fit) Coefficients() []Coefficient {
	out := make([]Coefficient, len(f.coeffs))
	copy(out, f.coeffs)
	return out
}

// Persistence returns alpha1 + beta1.
func (f *Fit) Persistence() float64 { return f.Alpha1 + f.Beta1 }

// TrimmedStdResiduals returns the standardized residuals with the burn-in
// prefix dropped, the form used by post-fit diagnostics.
func (f *Fit) TrimmedStdResiduals() []float64 {
	if len(f.StdResiduals) <= BurnIn {
		return nil
	}
	out := make([]float64, len(f.StdResiduals)-BurnIn)
	copy(out, f.StdResiduals[BurnIn:])
	return out
}

// Estimate fits a GARCH(1,1) model to the returns by maximizing the
// conditional Gaussian log-likelihood subject to omega > 0, alpha1, beta1 >= 0
// and alpha1 + beta1 < 1.
func Estimate(returns []float64) (*Fit, error) {
	n := len(returns)
	if n < MinObservations {
		return nil, fmt.Errorf("%w: need at least %d observations, got %d", ErrInsufficientData, MinObservations, n)
	}

	sampleVar := stat.Variance(returns, nil)
	if sampleVar <= 0 || math.IsNaN(sampleVar) {
		return nil, fmt.Errorf("%w: sample variance is not positive", ErrInvalidInput)
	}

	// The optimizer works in an unconstrained space: omega = exp(x0), and
	// (alpha1, beta1) are softmax shares of exp(x1), exp(x2), which keeps
	// omega positive and alpha1 + beta1 strictly below one.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			omega, alpha, beta := fromUnconstrained(x)
			return negLogLikelihood(returns, sampleVar, omega, alpha, beta)
		},
	}

	x0 := toUnconstrained(0.05*sampleVar, 0.05, 0.90)
	settings := &optimize.Settings{FuncEvaluations: MaxEvaluations}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConvergence, err)
	}
	switch result.Status {
	case optimize.Failure, optimize.NotTerminated, optimize.IterationLimit,
		optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		return nil, fmt.Errorf("%w: optimizer stopped with status %v after %d evaluations",
			ErrConvergence, result.Status, result.FuncEvaluations)
	}

	omega, alpha, beta := fromUnconstrained(result.X)
	if alpha+beta >= 1 {
		return nil, fmt.Errorf("%w: alpha1+beta1 = %.6f", ErrNonStationary, alpha+beta)
	}

	stderrs, err := stdErrors(returns, sampleVar, omega, alpha, beta)
	if err != nil {
		return nil, err
	}

	sigma := condStdDev(returns, sampleVar, omega, alpha, beta)
	stdRes := make([]float64, n)
	for i, r := range returns {
		stdRes[i] = r / sigma[i]
	}

	ll := -result.F
	const k = 3
	fit := &Fit{
		Omega:         omega,
		Alpha1:        alpha,
		Beta1:         beta,
		CondStdDev:    sigma,
		StdResiduals:  stdRes,
		LogLikelihood: ll,
		AIC:           -2*ll + 2*k,
		BIC:           -2*ll + k*math.Log(float64(n)),
		Iterations:    result.MajorIterations,
		FuncEvals:     result.FuncEvaluations,
	}
	fit.coeffs = buildCoefficients(fit, stderrs)

	log.Debug().
		Float64("omega", omega).
		Float64("alpha1", alpha).
		Float64("beta1", beta).
		Float64("persistence", alpha+beta).
		Float64("log_likelihood", ll).
		Int("func_evals", result.FuncEvaluations).
		Msg("GARCH(1,1) estimation converged")

	return fit, nil
}

func buildCoefficients(f *Fit, stderrs [3]float64) []Coefficient {
	names := []string{"omega", "alpha1", "beta1"}
	estimates := []float64{f.Omega, f.Alpha1, f.Beta1}

	coeffs := make([]Coefficient, 3)
	for i := range coeffs {
		tstat := estimates[i] / stderrs[i]
		coeffs[i] = Coefficient{
			Name:     names[i],
			Estimate: estimates[i],
			StdError: stderrs[i],
			TStat:    tstat,
			PValue:   2 * distuv.UnitNormal.Survival(math.Abs(tstat)),
		}
	}
	return coeffs
}

// negLogLikelihood evaluates the negative conditional Gaussian log-likelihood.
// Invalid parameter points evaluate to +Inf so the optimizer steps away.
func negLogLikelihood(returns []float64, sampleVar, omega, alpha, beta float64) float64 {
	if omega <= 0 || alpha < 0 || beta < 0 || alpha+beta >= 1 {
		return math.Inf(1)
	}

	v := sampleVar
	ll := 0.0
	for i, r := range returns {
		if i > 0 {
			prev := returns[i-1]
			v = omega + alpha*prev*prev + beta*v
		}
		if v <= 0 {
			return math.Inf(1)
		}
		ll += math.Log(2*math.Pi) + math.Log(v) + r*r/v
	}
	return 0.5 * ll
}

// condStdDev runs the variance recursion and returns sigma_t per period.
func condStdDev(returns []float64, sampleVar, omega, alpha, beta float64) []float64 {
	out := make([]float64, len(returns))
	v := sampleVar
	for i := range returns {
		if i > 0 {
			prev := returns[i-1]
			v = omega + alpha*prev*prev + beta*v
		}
		out[i] = math.Sqrt(v)
	}
	return out
}

// stdErrors computes asymptotic standard errors from the inverse of the
// numeric Hessian of the negative log-likelihood at the optimum.
func stdErrors(returns []float64, sampleVar, omega, alpha, beta float64) ([3]float64, error) {
	theta := []float64{omega, alpha, beta}
	f := func(p []float64) float64 {
		return negLogLikelihood(returns, sampleVar, p[0], p[1], p[2])
	}

	// Steps are shrunk near the constraint boundaries so the stencil stays
	// inside the feasible region.
	h := make([]float64, 3)
	for i, t := range theta {
		h[i] = math.Max(1e-6, 1e-4*math.Abs(t))
	}
	slack := 1 - alpha - beta
	h[1] = math.Min(h[1], slack/4)
	h[2] = math.Min(h[2], slack/4)
	h[0] = math.Min(h[0], omega/4)

	center := f(theta)
	hess := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			var d2 float64
			if i == j {
				p := clone(theta)
				p[i] = theta[i] + h[i]
				fp := f(p)
				p[i] = theta[i] - h[i]
				fm := f(p)
				d2 = (fp - 2*center + fm) / (h[i] * h[i])
			} else {
				p := clone(theta)
				p[i], p[j] = theta[i]+h[i], theta[j]+h[j]
				fpp := f(p)
				p[i], p[j] = theta[i]+h[i], theta[j]-h[j]
				fpm := f(p)
				p[i], p[j] = theta[i]-h[i], theta[j]+h[j]
				fmp := f(p)
				p[i], p[j] = theta[i]-h[i], theta[j]-h[j]
				fmm := f(p)
				d2 = (fpp - fpm - fmp + fmm) / (4 * h[i] * h[j])
			}
			if math.IsInf(d2, 0) || math.IsNaN(d2) {
				return [3]float64{}, fmt.Errorf("%w: hessian not finite at the optimum", ErrConvergence)
			}
			hess.SetSym(i, j, d2)
		}
	}

	var cov mat.Dense
	if err := cov.Inverse(hess); err != nil {
		return [3]float64{}, fmt.Errorf("%w: information matrix not invertible: %v", ErrConvergence, err)
	}

	var out [3]float64
	for i := 0; i < 3; i++ {
		v := cov.At(i, i)
		if v <= 0 {
			return [3]float64{}, fmt.Errorf("%w: non-positive variance estimate for parameter %d", ErrConvergence, i)
		}
		out[i] = math.Sqrt(v)
	}
	return out, nil
}

func clone(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	return out
}

func toUnconstrained(omega, alpha, beta float64) []float64 {
	rest := 1 - alpha - beta
	return []float64{
		math.Log(omega),
		math.Log(alpha / rest),
		math.Log(beta / rest),
	}
}

func fromUnconstrained(x []float64) (omega, alpha, beta float64) {
	omega = math.Exp(x[0])
	ea, eb := math.Exp(x[1]), math.Exp(x[2])
	s := 1 + ea + eb
	return omega, ea / s, eb / s
}
