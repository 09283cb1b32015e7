package bridge

// PingResponse is returned by Ping
const PingResponse = "pong"

// Dialog settings for state files
const (
	DialogTitleExport = "Export Player State"
	DialogTitleImport = "Import Player State"
	DefaultFileName   = "player-state.json"
	FilterNameJSON    = "JSON"
	ExtensionJSON     = "json"

	exportFileMode = 0644
)

// Log messages
const (
	LogMsgExportCanceled = "State export canceled"
	LogMsgExported       = "State exported to file"
	LogMsgImportCanceled = "State import canceled"
	LogMsgImported       = "State imported from file"
)
