package hotel

import "time"

type Client struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

type RoomType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Room struct {
	ID          int     `json:"id"`
	Number      int     `json:"number"`
	TypeID      int     `json:"typeId"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price"`

	Type *RoomType `json:"type,omitempty"`
}

// Invoice is a booking of one room for one client over the half-open
// interval [DateStart, DateEnd). Room and Client are resolved for responses
// and never persisted.
type Invoice struct {
	ID        int       `json:"id"`
	RoomID    int       `json:"roomId"`
	ClientID  int       `json:"clientId"`
	DateStart time.Time `json:"dateStart"`
	DateEnd   time.Time `json:"dateEnd"`
	Amount    float64   `json:"amount"`

	Room   *Room   `json:"room,omitempty"`
	Client *Client `json:"client,omitempty"`
}

type EventType string

const (
	EventInvoiceCreated EventType = "InvoiceCreated"
	EventInvoiceUpdated EventType = "InvoiceUpdated"
	EventInvoiceDeleted EventType = "InvoiceDeleted"
)

type Event struct {
	ID        int
	InvoiceID int
	Type      EventType
	CreatedAt time.Time
}

type ClientInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type RoomInput struct {
	Number      int     `json:"number"`
	TypeID      int     `json:"typeId"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type InvoiceInput struct {
	RoomID    int       `json:"roomId"`
	ClientID  int       `json:"clientId"`
	DateStart time.Time `json:"dateStart"`
	DateEnd   time.Time `json:"dateEnd"`
}

// SortOrder orders listings by id.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
