package dsl

import (
	"testing"

	"github.com/aretw0/fable/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := New("cave").Title("The Cave").Var("torch", false).Var("gold", 3)

	b.Passage("start").
		Text("A cave mouth yawns before you.").
		Start().
		Go("Pick up the torch", "grab").
		GoIf("torch", "Enter", "inside")

	b.Variable("grab").Set("torch", true).Inc("gold", 1).Next("start")
	b.Condition("check", "gold > 2").Then("inside").Else("start")
	b.Include("side", "side.yaml").Entry("inside").Return("start")
	b.Choice("menu").Prompt("Where?").Go("Back", "start")
	b.Comment("note", "rewrite the intro")
	b.Passage("inside").Text("Darkness.").Ending()

	story, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "cave", story.ID)
	assert.Equal(t, "The Cave", story.Title)
	assert.Equal(t, 3.0, story.Variables["gold"])
	assert.Equal(t, 7, story.Len())

	n, ok := story.Node("start")
	require.True(t, ok)
	start := n.(*domain.Passage)
	assert.True(t, start.Start)
	require.Len(t, start.Choices, 2)
	assert.Equal(t, "torch", start.Choices[1].Condition)

	n, _ = story.Node("grab")
	grab := n.(*domain.Variable)
	assert.Equal(t, map[string]any{"torch": true}, grab.Set)
	assert.Equal(t, 1.0, grab.Increment["gold"])
	assert.Equal(t, "start", grab.Next)

	n, _ = story.Node("note")
	assert.Equal(t, domain.KindComment, n.Kind())
}

func TestBuilder_ReusesExistingNode(t *testing.T) {
	b := New("s")
	b.Passage("a").Text("one")
	b.Passage("a").Go("next", "b")

	story := b.MustBuild()
	n, _ := story.Node("a")
	p := n.(*domain.Passage)
	assert.Equal(t, "one", p.Content)
	assert.Len(t, p.Choices, 1)
}

func TestBuilder_Errors(t *testing.T) {
	b := New("s")
	b.Passage("a")
	b.Variable("a")
	_, err := b.Build()
	assert.ErrorContains(t, err, "declared twice")

	_, err = New("s").Var("bad", []string{"x"}).Build()
	assert.ErrorContains(t, err, "unsupported value type")
}

func TestBuilder_EmptyChoiceNodeKeepsEmptyList(t *testing.T) {
	b := New("s")
	b.Choice("menu")
	story := b.MustBuild()
	n, _ := story.Node("menu")
	assert.NotNil(t, n.(*domain.ChoiceNode).Choices)
}
