package dual

// Func is a function of one dual variable that may fail.
type Func[T Float] func(x Number[T]) (Number[T], error)

// Derivative evaluates f at x seeded with tangent 1 and returns f(x) and f'(x).
//
// Example:
//
//	// f(x) = 5x² + 2x + 2
//	v, d, err := dual.Derivative(func(x dual.Number[float64]) (dual.Number[float64], error) {
//	    sq, err := x.PowScalar(2)
//	    if err != nil {
//	        return dual.Number[float64]{}, err
//	    }
//	    return sq.MulScalar(5).Add(x.MulScalar(2)).AddScalar(2), nil
//	}, 2.0)
//	// v = 26, d = 22
func Derivative[T Float](f Func[T], x T) (value, derivative T, err error) {
	y, err := f(Variable(x))
	if err != nil {
		return 0, 0, err
	}
	return y.value, y.tangent, nil
}
