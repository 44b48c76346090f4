package domain

import "strings"

// TransferStatus is the lifecycle state of a stock transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferApproved  TransferStatus = "approved"
	TransferInTransit TransferStatus = "in_transit"
	TransferReceived  TransferStatus = "received"
	TransferCancelled TransferStatus = "cancelled"
)

// Terminal reports whether no further action is allowed on the transfer.
func (s TransferStatus) Terminal() bool {
	return s == TransferReceived || s == TransferCancelled
}

var transferStatusLabels = map[TransferStatus]string{
	TransferPending:   "Pending",
	TransferApproved:  "Approved",
	TransferInTransit: "In Transit",
	TransferReceived:  "Received",
	TransferCancelled: "Cancelled",
}

// Label returns a human-readable label for a transfer status.
func (s TransferStatus) Label() string {
	if label, ok := transferStatusLabels[s]; ok {
		return label
	}

	return "Unknown"
}

// TransferAction is a requested transition on a transfer.
type TransferAction string

const (
	ActionApprove TransferAction = "approve"
	ActionShip    TransferAction = "ship"
	ActionReceive TransferAction = "receive"
	ActionCancel  TransferAction = "cancel"
)

var transferActions = map[string]TransferAction{
	"approve": ActionApprove,
	"ship":    ActionShip,
	"receive": ActionReceive,
	"cancel":  ActionCancel,
}

// ParseTransferAction returns the action for a given name (case-insensitive).
func ParseTransferAction(name string) (TransferAction, bool) {
	action, ok := transferActions[strings.ToLower(strings.TrimSpace(name))]

	return action, ok
}
