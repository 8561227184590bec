package validator_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/aretw0/fable/internal/validator"
	"github.com/aretw0/fable/pkg/domain"
	"github.com/aretw0/fable/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(res domain.ValidationResult) []string {
	out := make([]string, 0, len(res.Issues))
	for _, is := range res.Issues {
		out = append(out, is.Code)
	}
	return out
}

func TestValidate_CleanStory(t *testing.T) {
	b := dsl.New("clean")
	b.Passage("start").Text("The road forks here.").Start().
		Go("Left", "left").
		GoIf("brave == true", "Right", "right")
	b.Passage("left").Text("A quiet meadow ends the trip.").Ending()
	b.Passage("right").Text("A dragon ends the trip.").Ending()

	res := validator.Validate(b.MustBuild())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Issues)
	assert.NotNil(t, res.Issues)
	assert.Equal(t, domain.IssueCounts{}, res.Counts)
}

func TestValidate_StartNodes(t *testing.T) {
	none := dsl.New("none")
	none.Passage("a").Text("Nobody starts here.").Ending()
	res := validator.Validate(none.MustBuild())
	assert.False(t, res.Valid)
	assert.Equal(t, []string{domain.IssueNoStartNode}, codes(res))

	two := dsl.New("two")
	two.Passage("a").Text("First opening line.").Start().Ending()
	two.Passage("b").Text("Second opening line.").Start().Ending()
	res = validator.Validate(two.MustBuild())
	require.Len(t, res.ByCode(domain.IssueMultipleStartNodes), 2)
	assert.Equal(t, "a", res.Issues[0].NodeID)
	assert.Equal(t, "b", res.Issues[1].NodeID)
	assert.Equal(t, 2, res.Counts.Error)
}

func TestValidate_BrokenReference(t *testing.T) {
	b := dsl.New("broken")
	b.Passage("start").Text("Two doors stand here.").Start().
		Go("Door", "nowhere").
		Go("Blank", "")
	b.Include("inc", "x.yaml").Entry("ghost").Return("start")

	res := validator.Validate(b.MustBuild())
	broken := res.ByCode(domain.IssueBrokenReference)
	require.Len(t, broken, 3)
	assert.Equal(t, domain.CategoryReference, broken[0].Category)
	assert.False(t, res.Valid)

	targets := []any{}
	for _, is := range broken {
		targets = append(targets, is.Details["target"])
	}
	assert.ElementsMatch(t, []any{"nowhere", "", "ghost"}, targets)
}

func TestValidate_Reachability(t *testing.T) {
	b := dsl.New("reach")
	b.Passage("start").Text("Only one path here.").Start().Go("On", "inc")
	b.Include("inc", "sub.yaml").Entry("sub").Return("end")
	b.Passage("sub").Text("Reached through the include.").Ending()
	b.Passage("end").Text("And so it ends well.").Ending()
	b.Passage("orphan").Text("Nobody links to me.").Ending()
	b.Comment("note", "comments are exempt")

	res := validator.Validate(b.MustBuild())
	unreachable := res.ByCode(domain.IssueUnreachableNode)
	require.Len(t, unreachable, 1)
	assert.Equal(t, "orphan", unreachable[0].NodeID)
	assert.Equal(t, domain.SeverityWarning, unreachable[0].Severity)
}

func TestValidate_DeadEndsAndContent(t *testing.T) {
	b := dsl.New("flow")
	b.Passage("start").Text("This passage leads on.").Start().Go("Go", "stuck").Go("Menu", "menu").Go("Inc", "inc").Go("Short", "tiny")
	b.Passage("stuck").Text("")
	b.Choice("menu").Prompt("Pick")
	b.Include("inc", "other.yaml")
	b.Passage("tiny").Text("Fin.").Ending()

	res := validator.Validate(b.MustBuild())

	assert.Len(t, res.ByCode(domain.IssueUnmarkedDeadEnd), 1)
	assert.Len(t, res.ByCode(domain.IssueChoiceWithoutOptions), 1)
	assert.Len(t, res.ByCode(domain.IssueIncludeNoReturn), 1)
	assert.Len(t, res.ByCode(domain.IssueEmptyContent), 1)

	short := res.ByCode(domain.IssueShortContent)
	require.Len(t, short, 1)
	assert.Equal(t, "tiny", short[0].NodeID)
	assert.Equal(t, domain.SeverityInfo, short[0].Severity)
	assert.Equal(t, 4, short[0].Details["length"])
}

func TestValidate_Cycles(t *testing.T) {
	t.Run("cycle with exit", func(t *testing.T) {
		b := dsl.New("loop")
		b.Passage("start").Text("Round and round we go.").Start().Go("Again", "mid").Go("Leave", "end")
		b.Passage("mid").Text("The middle of the loop.").Go("Back", "start")
		b.Passage("end").Text("Finally out of here.").Ending()

		res := validator.Validate(b.MustBuild())
		cycles := res.ByCode(domain.IssueCycleDetected)
		require.Len(t, cycles, 1)
		assert.Equal(t, "mid", cycles[0].NodeID)
		assert.Equal(t, []string{"mid", "start"}, cycles[0].Details["cycle"])
		assert.Empty(t, res.ByCode(domain.IssueNonTerminatingCycle))
	})

	t.Run("cycle without exit", func(t *testing.T) {
		b := dsl.New("trap")
		b.Passage("start").Text("The trap begins here.").Start().Go("In", "a")
		b.Passage("a").Text("Room A of the trap.").Go("Next", "b")
		b.Passage("b").Text("Room B of the trap.").Go("Next", "a")

		res := validator.Validate(b.MustBuild())
		trap := res.ByCode(domain.IssueNonTerminatingCycle)
		require.Len(t, trap, 1)
		assert.Equal(t, "a", trap[0].NodeID)
		assert.Equal(t, domain.SeverityWarning, trap[0].Severity)
		assert.Empty(t, res.ByCode(domain.IssueCycleDetected))
	})

	t.Run("self loop through a variable", func(t *testing.T) {
		b := dsl.New("self")
		b.Passage("start").Text("A counter that never stops.").Start().Go("Count", "tick")
		b.Variable("tick").Inc("n", 1).Next("tick")

		res := validator.Validate(b.MustBuild())
		trap := res.ByCode(domain.IssueNonTerminatingCycle)
		require.Len(t, trap, 1)
		assert.Equal(t, []string{"tick"}, trap[0].Details["cycle"])
	})

	t.Run("dangling edges are not exits", func(t *testing.T) {
		b := dsl.New("dangle")
		b.Passage("start").Text("Start of a closed loop.").Start().Go("Loop", "start").Go("Nowhere", "missing")

		res := validator.Validate(b.MustBuild())
		assert.Len(t, res.ByCode(domain.IssueNonTerminatingCycle), 1)
	})
}

func TestValidate_DeepChainDoesNotRecurse(t *testing.T) {
	b := dsl.New("deep")
	const n = 20000
	b.Passage("p0").Text("The first of many rooms.").Start().Go("next", "p1")
	for i := 1; i < n; i++ {
		b.Passage(fmt.Sprintf("p%d", i)).Text("Yet another long room.").Go("next", fmt.Sprintf("p%d", i+1))
	}
	b.Passage(fmt.Sprintf("p%d", n)).Text("Back to the first room.").Go("again", "p0")

	res := validator.Validate(b.MustBuild())
	trap := res.ByCode(domain.IssueNonTerminatingCycle)
	require.Len(t, trap, 1)
	assert.Equal(t, n+1, trap[0].Details["length"])
}

func TestValidate_Conditions(t *testing.T) {
	b := dsl.New("cond")
	b.Passage("start").Text("Pick carefully now.").Start().
		GoIf("(gold > 1", "Broken guard", "c1").
		GoIf("gold >= 1", "Fine guard", "c2")
	b.Condition("c1", "count++ > 1").Then("end").Else("end")
	b.Condition("c2", "").Then("end").Else("end")
	b.Passage("end").Text("The story is done.").Ending()

	res := validator.Validate(b.MustBuild())

	invalid := res.ByCode(domain.IssueInvalidCondition)
	require.Len(t, invalid, 3)
	nodes := []string{invalid[0].NodeID, invalid[1].NodeID, invalid[2].NodeID}
	assert.Equal(t, []string{"c1", "c2", "start"}, nodes)

	effectful := res.ByCode(domain.IssueEffectfulCondition)
	require.Len(t, effectful, 1)
	assert.Equal(t, "c1", effectful[0].NodeID)
	assert.Equal(t, []string{"increment"}, effectful[0].Details["effects"])
}

func TestValidate_Variables(t *testing.T) {
	b := dsl.New("vars")
	b.Passage("start").Text("Variables are set here.").Start().Go("Noop", "noop").Go("Lost", "lost")
	b.Variable("noop").Next("end")
	b.Variable("lost").Set("x", 1)
	b.Passage("end").Text("The story is done.").Ending()

	res := validator.Validate(b.MustBuild())
	require.Len(t, res.ByCode(domain.IssueNoStateChange), 1)
	assert.Equal(t, "noop", res.ByCode(domain.IssueNoStateChange)[0].NodeID)
	require.Len(t, res.ByCode(domain.IssueVariableNoNext), 1)
	assert.Equal(t, "lost", res.ByCode(domain.IssueVariableNoNext)[0].NodeID)
	assert.True(t, res.Valid, "state hygiene findings are warnings")
}

func TestValidate_StableOrdering(t *testing.T) {
	b := dsl.New("messy")
	b.Passage("z").Text("").Start().Start()
	b.Passage("y").Text("short").Go("x", "missing").Go("loop", "y")
	b.Passage("x").Text("Unreachable but long enough.").Start()
	b.Variable("w")
	b.Condition("v", "a = 1").Then("z")
	story := b.MustBuild()

	first := validator.Validate(story)
	for range 10 {
		again := validator.Validate(story)
		assert.Equal(t, first.Issues, again.Issues)
	}

	for i := 1; i < len(first.Issues); i++ {
		assert.LessOrEqual(t, domain.CompareIssues(first.Issues[i-1], first.Issues[i]), 0)
	}
	assert.Equal(t, domain.SeverityError, first.Issues[0].Severity)
	assert.Equal(t, domain.SeverityInfo, first.Issues[len(first.Issues)-1].Severity)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	b := dsl.New("m")
	b.Passage("start").Text("Stay the same please.").Start().Go("x", "gone")
	story := b.MustBuild()
	before := story.Edges()

	validator.Validate(story)
	assert.Equal(t, before, story.Edges())
	assert.Equal(t, 1, story.Len())
}

func TestValidate_NilStory(t *testing.T) {
	assert.NotPanics(t, func() {
		res := validator.Validate(nil)
		assert.Equal(t, []string{domain.IssueNoStartNode}, codes(res))
	})
}

func TestValidateWith_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := dsl.New("logged")
	b.Passage("start").Text("Just a quick story.").Start().Ending()
	validator.ValidateWith(b.MustBuild(), validator.WithLogger(logger))

	assert.Contains(t, buf.String(), "story validated")
	assert.Contains(t, buf.String(), "story_id=logged")
	assert.Contains(t, buf.String(), "errors=0")
}
