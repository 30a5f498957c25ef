package stepwise_test

import (
	"context"
	"fmt"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/pkg/domain"
)

func Example() {
	eng := stepwise.New()
	ctx := context.Background()

	s, err := eng.Start(ctx, domain.BubbleSort, domain.NewSequence(3, 1, 2), domain.Params{})
	if err != nil {
		panic(err)
	}
	for !s.Done() {
		for _, f := range s.Tick(ctx) {
			fmt.Println(f.Step.Seq, f.Step.Kind, f.Step.Snapshot.Values)
		}
	}
}

func ExampleEngine_Compare() {
	eng := stepwise.New()
	ctx := context.Background()

	s, err := eng.Compare(ctx,
		[]domain.AlgorithmID{domain.LinearSearch, domain.BinarySearch},
		domain.NewSequence(1, 4, 4, 7, 9),
		domain.Params{Target: 4},
	)
	if err != nil {
		panic(err)
	}
	for !s.Done() {
		s.Tick(ctx)
	}
	for _, l := range s.Lanes() {
		fmt.Printf("%s: index %d after %d steps\n", l.Name, l.Last.Result.Index(), l.Steps)
	}
}
