/*
Package dsl provides a Go DSL for programmatically constructing workflow nets.

It lets tests, examples and host programs declare nets with a fluent builder
instead of YAML or JSON documents. The builder produces the same domain.Net that
the compiler produces from a file, so the validator and engine cannot tell them apart.

Example usage:

	net := dsl.New("approval").
		Places("p_start", "p_middle", "p_end").
		Transition("t1").From("p_start").To("p_middle").
		Transition("t2").From("p_middle").To("p_end").When("approved").
		MustBuild()

	result, err := strumyk.New().Simulate(ctx, net, domain.RunConfig{
		Context: domain.Context{"approved": true},
	})
*/
package dsl
