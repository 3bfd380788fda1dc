// Package introspect builds serializable reports about the shadow registry and
// the bridge table. The CLI and the MCP server render the same reports.
package introspect
