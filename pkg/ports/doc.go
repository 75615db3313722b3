/*
Package ports defines the driven ports (interfaces) around the strumyk core.

These interfaces decouple validation and simulation from external implementations,
allowing the toolkit to read nets from various sources and keep run reports in
various stores.

# Key Interfaces

  - NetLoader: Retrieves raw net documents by name (e.g., from files, Loam or memory).
  - ReportStore: Persists RunResult reports (e.g., in memory or Redis).
  - Toolkit: The operations the HTTP and MCP adapters expose.
*/
package ports
