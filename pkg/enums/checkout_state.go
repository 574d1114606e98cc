package enums

// CheckoutState tracks where a session sits in the checkout lifecycle.
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "idle"
	CheckoutStateSubmitting CheckoutState = "submitting"
	CheckoutStateCommitted  CheckoutState = "committed"
)

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}
