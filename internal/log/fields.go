package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldOperation  = "operation"
	FieldEntryID    = "entry_id"
	FieldEntryType  = "entry_type"
	FieldAmount     = "amount"
	FieldBackupRef  = "backup_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentExport  = "export"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate = "create"
	OpDelete = "delete"
	OpAppend = "append"
)
