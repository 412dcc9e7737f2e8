/*
Package dsl provides a fluent builder for K-tape machine descriptions.

It lets callers define machines in Go instead of the line-oriented text
format, which is handy for generated machines and for tests.

Example usage:

	m, err := dsl.New("Pairs").
		Start("q0").
		Accept("qf").
		On("q0", "0", "1").Write("1", "0").Move(">", "-").Go("qf").
		On("q0", "1", "1").Write("1", "1").Move("-", "-").Go("qf").
		Build()
	if err != nil {
		log.Fatal(err)
	}
	out, err := lineator.New().Flatten(ctx, m)
*/
package dsl
