package document_test

import (
	"testing"

	"github.com/aretw0/fable/pkg/adapters/document"
	"github.com/aretw0/fable/pkg/dsl"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_RoundTrip(t *testing.T) {
	b := dsl.New("tour").Title("A Short Tour").Var("gold", 3).Var("ratio", 0.5).Var("seen", false).Var("who", "you")
	b.Passage("start").Text("Welcome.\nTwo lines of text.").Start().At(1, 2).
		Go("Shop", "shop").
		GoIf("gold > 2", "Bank", "bank")
	b.Choice("shop").Prompt("Buy what?").Go("Nothing", "end")
	b.Choice("empty").Prompt("No options")
	b.Condition("bank", "seen === false").Then("pay").Else("end")
	b.Variable("pay").Set("seen", true).Set("who", "banker").Inc("gold", 2).Dec("ratio", 0.25).Next("sub")
	b.Include("sub", "sub.yaml").Entry("start").Return("end")
	b.Passage("end").Text("Goodbye.").Ending()
	b.Comment("todo", "add a second shop")
	story := b.MustBuild()

	data, err := document.Marshal(story)
	require.NoError(t, err)

	parsed, err := document.Parse(data)
	require.NoError(t, err, string(data))

	assert.Equal(t, story.ID, parsed.ID)
	assert.Equal(t, story.Title, parsed.Title)
	assert.Equal(t, story.Variables, parsed.Variables)
	if diff := cmp.Diff(story.Nodes(), parsed.Nodes()); diff != "" {
		t.Fatalf("nodes differ after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(story.Edges(), parsed.Edges()); diff != "" {
		t.Fatalf("edges differ after round trip (-want +got):\n%s", diff)
	}
}

func TestMarshal_Layout(t *testing.T) {
	b := dsl.New("tiny")
	b.Passage("start").Text("Hi.").Start().Ending()

	data, err := document.Marshal(b.MustBuild())
	require.NoError(t, err)
	assert.Equal(t, `id: tiny
nodes:
  start:
    type: passage
    start: true
    ending: true
    content: Hi.
`, string(data))
}
