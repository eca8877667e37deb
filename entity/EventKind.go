package entity

import "fmt"

type EventKind string

const (
	EventScan          EventKind = "scan"
	EventCoffeeSelect  EventKind = "coffee_select"
	EventPairingView   EventKind = "pairing_view"
	EventPairingAccept EventKind = "pairing_accept"
	EventAddToCart     EventKind = "add_to_cart"
	EventCheckout      EventKind = "checkout"
)

// EventKinds in journey order.
var EventKinds = []EventKind{
	EventScan, EventCoffeeSelect, EventPairingView, EventPairingAccept, EventAddToCart, EventCheckout,
}

func ParseEventKind(s string) (EventKind, error) {
	for _, k := range EventKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown event kind %q", s)
}

func (k EventKind) Valid() bool {
	_, err := ParseEventKind(string(k))
	return err == nil
}
