package async_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kbukum/asynckit/async"
)

func ExampleEachLimit() {
	ev := async.EachLimit([]string{"a", "b", "c"}, 2, async.Go(func(s string) error {
		if s == "b" {
			return errors.New("unreachable host")
		}
		return nil
	}), func(errs async.Errors) {
		fmt.Println(errs.Indices())
	})
	ev.Wait()
	// Output: [1]
}

func ExampleMap() {
	async.Map(async.Parallel(), []string{"go", "is", "fun"}, async.GoWith(func(s string) (string, error) {
		return strings.ToUpper(s), nil
	}), func(out []string, errs async.Errors) {
		fmt.Println(out, errs.Len())
	}).Wait()
	// Output: [GO IS FUN] 0
}

func ExampleReduce() {
	async.Reduce([]int{1, 2, 3}, 0, func(memo, n int, done async.DoneWith[int]) {
		done(memo+n, nil)
	}, func(sum int, _ async.Errors) {
		fmt.Println(sum)
	})
	// Output: 6
}

func ExampleFilter() {
	out := make(chan []int, 1)
	async.Filter(async.Parallel(), []int{3, 1, 2}, async.GoVerdict(func(n int) bool {
		return n%2 == 1
	}), func(kept []int) { out <- kept })
	fmt.Println(<-out)
	// Output: [3 1]
}
