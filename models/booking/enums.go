package booking

// Status is shared by bookings and shipments.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusInTransit  Status = "IN_TRANSIT"
	StatusDelivered  Status = "DELIVERED"
	StatusReturned   Status = "RETURNED"
	StatusCancelled  Status = "CANCELLED"
)

var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusReturned, StatusCancelled},
	StatusShipped:    {StatusInTransit, StatusReturned, StatusCancelled},
	StatusInTransit:  {StatusDelivered, StatusReturned},
	StatusReturned:   {StatusProcessing},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is legal.
// Staying on the same non-terminal status is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return !s.IsTerminal()
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsCancellable reports whether the owner may still cancel.
func (s Status) IsCancellable() bool {
	return s == StatusProcessing || s == StatusShipped
}

// CancellableStatuses is used in conditional cancel writes.
func CancellableStatuses() []Status {
	return []Status{StatusProcessing, StatusShipped}
}

func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusProcessing,
		StatusShipped,
		StatusInTransit,
		StatusDelivered,
		StatusReturned,
		StatusCancelled,
	}
}

type RiderResponse string

const (
	RiderResponsePending  RiderResponse = "PENDING"
	RiderResponseAccepted RiderResponse = "ACCEPTED"
	RiderResponseRejected RiderResponse = "REJECTED"
)

type PackageSize string

const (
	PackageSmall      PackageSize = "SMALL"
	PackageMedium     PackageSize = "MEDIUM"
	PackageLarge      PackageSize = "LARGE"
	PackageExtraLarge PackageSize = "EXTRA_LARGE"
)

func (p PackageSize) IsValid() bool {
	switch p {
	case PackageSmall, PackageMedium, PackageLarge, PackageExtraLarge:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentBankTransfer:
		return true
	default:
		return false
	}
}
