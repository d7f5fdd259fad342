package domain

// ClientStatus represents the lifecycle state of a client account.
// Deletion is a status flip only; rows are never removed.
type ClientStatus string

const (
	ClientStatusActive  ClientStatus = "Active"
	ClientStatusDeleted ClientStatus = "Deleted"
)

// Client represents a back-office client in the domain.
// NoOfTransactions is a cached counter; it tracks the live count of
// non-deleted records for this client and may be transiently stale
// between a record mutation and the next reconciliation pass.
type Client struct {
	ClientID         string       `json:"clientID"`
	ClientName       string       `json:"clientName"`
	ContactNumber    string       `json:"contactNumber"`
	NoOfTransactions int64        `json:"noOfTransactions"`
	AccountStatus    ClientStatus `json:"accountStatus"`
	AuditFields
}
