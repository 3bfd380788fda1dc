// Package mcpserver exposes the shadow registry and bridge reports as MCP tools
// served over stdio.
//
// Tools:
//   - shadow_list: every registered shadow descriptor
//   - shadow_resolve: which shadow applies to a type at an SDK level
//   - shadow_table: the resolution of every registered target at an SDK level
//   - bridge_types: the types, constructors and methods reachable through the bridge
package mcpserver
