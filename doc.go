/*
Package fable is an engine for branching interactive fiction.

A story is a graph of nodes. Passages and choice menus are shown to the
player; conditions, variable updates, includes and comments are walked
silently between them. The engine validates stories before play, runs them
one frame at a time under resource limits, and saves and restores sessions
in a versioned JSON envelope.

# Usage

	story, err := fable.LoadStory("cellar.yaml")
	if err != nil {
		log.Fatal(err)
	}
	if res := fable.Validate(story); !res.Valid {
		log.Fatalf("story has %d errors", res.Counts.Error)
	}

	eng := fable.New()
	state := eng.NewSession(story)

	frame, err := eng.Start(state, "")
	for err == nil && !frame.Ending {
		fmt.Println(frame.Text)
		frame, err = eng.Choose(state, frame.Choices[0].ID)
	}

Stories may also be built in code with the pkg/dsl builder. Expressions used
in guards and conditions are a small, side-effect free language implemented
by pkg/expr.
*/
package fable
