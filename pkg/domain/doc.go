/*
Package domain contains the core domain models of the strumyk workflow-net toolkit.

It defines the static structure of a net (places, transitions, arcs), the decoded input
document, and the runtime values owned by a single simulation run (marking, context, trace,
result). This package is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Net: Validated-shape, read-only representation of places and transitions, built once with NewNet.
  - NetDocument: The decoded (not raw) input describing a net.
  - Marking: Token count per place; owned exclusively by one run.
  - RunConfig / RunResult: Inputs and terminal outcome of a simulation.
  - LifecycleHooks: Callbacks that let hosts observe runs and validations.
*/
package domain
