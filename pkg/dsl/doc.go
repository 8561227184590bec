/*
Package dsl provides a fluent Go API for building stories in code.

It is the programmatic counterpart of the YAML document format and is handy
for tests, generated content and embedding small stories in programs.

Example usage:

	b := dsl.New("cave").Var("torch", false)

	b.Passage("start").
		Text("A cave mouth yawns before you.").
		Start().
		Go("Pick up the torch", "grab").
		GoIf("torch", "Enter the cave", "inside")

	b.Variable("grab").Set("torch", true).Next("start")

	b.Passage("inside").
		Text("The torch shows a way through.").
		Ending()

	story, err := b.Build()
*/
package dsl
