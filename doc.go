/*
Package stepwise turns sorting, searching and pathfinding algorithms into
sequences of observable steps that can be played, paused, resumed and
stopped under a timer, alone or side by side.

Every algorithm is a resumable stepper: each call to Step advances it to the
next observable point and returns an immutable domain.Step holding a private
snapshot of the data, the highlighted positions and the active pseudocode
line. A session groups one stepper per algorithm under a scheduler, which
ticks every unfinished lane once per tick and keeps a pause-aware timer per
lane.

# Usage

	eng := stepwise.New()
	s, err := eng.Compare(ctx,
		[]domain.AlgorithmID{domain.BubbleSort, domain.QuickSort},
		domain.NewSequence(5, 3, 8, 4, 2),
		domain.Params{},
	)
	if err != nil {
		log.Fatal(err)
	}
	for !s.Done() {
		for _, f := range s.Tick(ctx) {
			fmt.Println(f.Lane, f.Step.Kind, f.Step.Snapshot.Values)
		}
	}

Sessions can also be driven at their own pace with Session.Run, or through
the HTTP and MCP adapters under pkg/adapters. The stepwise command wraps all
of this in a terminal view.
*/
package stepwise
