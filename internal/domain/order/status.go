package order

// Status values are persisted as-is; ENVIADO is kept for compatibility with
// the storefront's shipped-state label.
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusPaid              Status = "PAID"
	StatusCanceled          Status = "CANCELED"
	StatusShipped           Status = "ENVIADO"
	StatusExchangeRequested Status = "EXCHANGE_REQUESTED"
	StatusExchanged         Status = "EXCHANGED"
	StatusReturned          Status = "RETURNED"
)

// validNext is the single source of truth for legal status transitions.
// Every status mutation in every usecase must pass CanTransition before
// issuing the store's compare-and-set update.
var validNext = map[Status]map[Status]bool{
	StatusPending: {
		StatusPaid:     true,
		StatusCanceled: true,
	},
	StatusPaid: {
		StatusShipped:           true,
		StatusExchangeRequested: true,
		StatusReturned:          true,
	},
	StatusShipped: {
		StatusExchangeRequested: true,
		StatusReturned:          true,
	},
	StatusExchangeRequested: {
		StatusExchanged: true,
		StatusPaid:      true, // rejected exchange request returns to PAID
	},
	StatusExchanged: {},
	StatusReturned:  {},
	StatusCanceled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := validNext[s]
	return ok
}

func (s Status) IsTerminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "PIX"
	PaymentCard   PaymentMethod = "CARD"
	PaymentBoleto PaymentMethod = "BOLETO"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentPix, PaymentCard, PaymentBoleto:
		return true
	default:
		return false
	}
}

// Synchronous methods get a gateway answer in the same request cycle, so the
// reconciler may be invoked directly after checkout.
func (m PaymentMethod) IsSynchronous() bool {
	return m == PaymentCard
}
