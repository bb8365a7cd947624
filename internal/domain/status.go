package domain

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderReady      OrderStatus = "ready"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderFlow is the fixed forward sequence an order moves through.
var OrderFlow = []OrderStatus{
	OrderPending,
	OrderProcessing,
	OrderReady,
	OrderDelivered,
	OrderCompleted,
}

func (s OrderStatus) Valid() bool {
	return s == OrderCancelled || s.flowIndex() >= 0
}

func (s OrderStatus) flowIndex() int {
	for i, step := range OrderFlow {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the status one step further along OrderFlow. Completed and
// cancelled orders stay where they are.
func (s OrderStatus) Next() OrderStatus {
	if s == OrderCancelled {
		return s
	}
	idx := s.flowIndex()
	if idx < 0 {
		return OrderPending
	}
	if idx+1 >= len(OrderFlow) {
		return OrderFlow[len(OrderFlow)-1]
	}
	return OrderFlow[idx+1]
}
