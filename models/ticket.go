package models

// Buyer is the participant attached to a sold ticket. Built from
// validated, sanitized input at assignment time; a re-assignment replaces
// the whole value.
type Buyer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Ticket is one numbered slot in the raffle pool.
// Buyer is non-nil exactly when Sold is true.
type Ticket struct {
	Number int    `json:"number"`
	Sold   bool   `json:"sold"`
	Buyer  *Buyer `json:"buyer"`
}
