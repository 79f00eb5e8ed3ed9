// Package admin implements the privileged dashboard: a multi-screen
// menu navigated by callback tokens, always rendered by editing the
// message in place and always recomputed from the live store.
package admin

// Callback action tokens. Every admin button round-trips one of these;
// anything outside the admin_ namespace never reaches this package.
const (
	TokenUsers    = "admin_users"
	TokenStats    = "admin_stats"
	TokenCmdLog   = "admin_cmdlog"
	TokenMessages = "admin_messages"
	TokenSettings = "admin_settings"
	TokenExport   = "admin_export"
	TokenReset    = "admin_reset"
	TokenBack     = "admin_back"
	TokenExit     = "admin_exit"
)

// Tokens lists every token the engine registers, in wiring order.
func Tokens() []string {
	return []string{
		TokenUsers,
		TokenStats,
		TokenCmdLog,
		TokenMessages,
		TokenSettings,
		TokenExport,
		TokenReset,
		TokenBack,
		TokenExit,
	}
}
