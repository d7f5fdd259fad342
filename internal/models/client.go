package models

// Client mirrors a row of the client table.
type Client struct {
	ClientID         string `db:"client_id"`
	ClientName       string `db:"client_name"`
	ContactNumber    string `db:"contact_number"`
	NoOfTransactions int64  `db:"no_of_transactions"`
	AccountStatus    string `db:"account_status"`
	AuditFields
}
