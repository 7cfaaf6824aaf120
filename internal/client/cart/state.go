package cart

// Visibility is what the UI should show for one product.
type Visibility int

const (
	// Absent: not in the cart as far as this store knows.
	Absent Visibility = iota
	// Pending: added locally, not yet seen in a cart fetched from the backend.
	Pending
	// Confirmed: present in the last cart received from the backend.
	Confirmed
)

func (v Visibility) String() string {
	switch v {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	}
	return "absent"
}
