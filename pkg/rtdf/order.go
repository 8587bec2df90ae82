package rtdf

import "time"

type OrderStatus string

const (
	OrderStatusUnpaid    OrderStatus = "Unpaid"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusOngoing   OrderStatus = "Ongoing"
	OrderStatusActive    OrderStatus = "Active"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
	OrderStatusFailed    OrderStatus = "Failed"
)

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusUnpaid:  {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusOngoing, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusOngoing: {OrderStatusActive, OrderStatusCancelled},
	OrderStatusActive:  {OrderStatusCompleted},
}

func (s OrderStatus) CanBecome(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// OrderKind is the closed set of order variants. Dispatch is a switch on the
// kind, with the per-kind payload in the matching details struct.
type OrderKind string

const (
	OrderKindTrain    OrderKind = "Train"
	OrderKindHotel    OrderKind = "Hotel"
	OrderKindDish     OrderKind = "Dish"
	OrderKindTakeaway OrderKind = "Takeaway"
)

type Order struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Kind   OrderKind   `bson:",omitempty"`
	Status OrderStatus `bson:",omitempty"`

	UserRef string `bson:",omitempty"`
	Amount  int64

	TransactionRef       string `bson:",omitempty"`
	RefundTransactionRef string `bson:",omitempty"`

	Train    *TrainOrderDetails    `bson:",omitempty"`
	Hotel    *HotelOrderDetails    `bson:",omitempty"`
	Dish     *DishOrderDetails     `bson:",omitempty"`
	Takeaway *TakeawayOrderDetails `bson:",omitempty"`

	CreationDateTime     time.Time `bson:",omitempty"`
	ModificationDateTime time.Time `bson:",omitempty"`
}

type TrainOrderDetails struct {
	ScheduleRef string `bson:",omitempty"`
	SeatTypeRef string `bson:",omitempty"`

	Range StationRange

	// Set once a seat has been reserved
	SeatRef string `bson:",omitempty"`

	SeatLocationPreference string `bson:",omitempty"`

	Passenger PersonalInfo
}

type HotelOrderDetails struct {
	HotelRef string `bson:",omitempty"`
	RoomType string `bson:",omitempty"`

	CheckIn  time.Time `bson:",omitempty"`
	CheckOut time.Time `bson:",omitempty"`
}

type DishOrderDetails struct {
	DishRef  string `bson:",omitempty"`
	Quantity int
}

type TakeawayOrderDetails struct {
	ShopRef  string `bson:",omitempty"`
	DishRefs []string
}
