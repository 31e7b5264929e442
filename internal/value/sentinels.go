package value

// noneValue is Kaki's `none`. It doubles as the absent-field sentinel: an
// unpopulated field slot, a missing optional block parameter, and a `none`
// literal are the same observable value. There is exactly one of it.
type noneValue struct{}

func (*noneValue) Kind() Kind      { return NONE_VAL }
func (*noneValue) Inspect() string { return "none" }
func (*noneValue) Hash() uint32    { return 0 }

// notImplValue signals that an operator implementation declines the given
// operand combination. It is a distinct sentinel from None: the operator
// broker checks for it by identity and it never leaks into user results.
type notImplValue struct{}

func (*notImplValue) Kind() Kind      { return NOT_IMPL_VAL }
func (*notImplValue) Inspect() string { return "NotImplemented" }
func (*notImplValue) Hash() uint32    { return 1 }

var (
	None           Value = &noneValue{}
	NotImplemented Value = &notImplValue{}
)
