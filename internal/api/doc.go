// Package api defines the transport types served by the whisperlited
// HTTP endpoint and the handlers behind it. Views are plain structs
// with camelCase JSON tags; converters translate internal state into
// them so handlers stay thin.
package api
