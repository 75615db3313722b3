/*
Package strumyk validates and simulates workflow nets (WF-nets): Petri nets used to model
business processes, where tokens flow from a single start place to a single end place.

It separates the net (the structure, compiled once and never mutated) from a run (the marking,
the trace and the step count), so one net can be validated and simulated many times, concurrently.

# Soundness

A net is accepted as sound when three checks pass, in this order:

  - Exactly one source place: a place that no transition outputs to.
  - Exactly one sink place: a place that no transition consumes from.
  - Every place and transition lies on a directed path from the source to the sink.

The first failing check is returned as a *domain.SoundnessError carrying its kind and the
offending ids, sorted. Each kind also matches a sentinel (domain.ErrMultipleSources, ...) with errors.Is.

# Simulation

Simulate places one token on the start place (p_start by default) and repeatedly fires the
first enabled transition in declaration order. A transition is enabled when every input place
holds a token and its guard, if any, evaluates to true against the run context. Firing consumes
one token per input arc and produces one token per output arc. The run ends as:

  - completed: the end place (p_end by default) holds a token.
  - deadlocked: no transition is enabled and the end place is empty.
  - step_limit_exceeded: the step cap (1000 by default) was reached first.

A guard that fails to evaluate (undefined variable, non-boolean result) counts as false for that
step and is recorded in the result; it never aborts the run.

# Usage

	eng, err := strumyk.New("./nets") // catalog of .yaml, .json and .md nets
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	net, err := eng.Load(ctx, "approval")
	if err != nil {
		log.Fatal(err)
	}

	if err := eng.Validate(ctx, net); err != nil {
		log.Fatal(err)
	}

	res, err := eng.Simulate(ctx, net, domain.RunConfig{
		Context: domain.Context{"approved": true},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Status, res.Trace)

Nets can also be compiled from bytes with Engine.Compile or built in Go with the pkg/dsl builder.
Run reports are kept by a ports.ReportStore (memory, files or Redis) when one is configured.
*/
package strumyk
